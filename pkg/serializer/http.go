/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatQueryParam is the query parameter selecting the response format.
const FormatQueryParam = "format"

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, "application/json", buf.Bytes())
}

// RespondYAML is RespondJSON for YAML.
func RespondYAML(w http.ResponseWriter, statusCode int, data any) {
	out, err := yaml.Marshal(data)
	if err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, "application/yaml", out)
}

// Respond writes data in the format the request asks for, see
// RequestFormat.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if RequestFormat(r) == FormatYAML {
		RespondYAML(w, statusCode, data)
		return
	}
	RespondJSON(w, statusCode, data)
}

// RequestFormat picks the response format from the "format" query parameter,
// then the Accept header. Only JSON and YAML are served over HTTP.
func RequestFormat(r *http.Request) Format {
	if f := Format(strings.ToLower(r.URL.Query().Get(FormatQueryParam))); f == FormatYAML || f == FormatJSON {
		return f
	}
	if strings.Contains(r.Header.Get("Accept"), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

func write(w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}
