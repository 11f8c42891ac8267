// Package kubeapi implements source.Source on top of client-go, for hosts
// without a kubectl binary.
//
// Nodes are rendered in the "kubectl describe node" layout and deployments
// as "kubectl get deployment -o yaml" output, so the text parsers apply
// unchanged whichever source produced it.
//
// # Kubernetes Client
//
// Without an explicit ClientSet the source builds one on first use:
//
//	src := &kubeapi.Source{Kubeconfig: path, Context: "staging"}
//	names, err := src.ListNodeNames(ctx)
//
// Discovery follows client.BuildKubeClient: the explicit path, then
// KUBECONFIG, then ~/.kube/config, then the in-cluster service account.
//
// # RBAC Requirements
//
//	apiVersion: rbac.authorization.k8s.io/v1
//	kind: ClusterRole
//	metadata:
//	  name: cluster-reader
//	rules:
//	- apiGroups: [""]
//	  resources: ["nodes", "namespaces"]
//	  verbs: ["get", "list"]
//	- apiGroups: ["apps"]
//	  resources: ["deployments"]
//	  verbs: ["get", "list"]
package kubeapi
