// Package parser extracts typed inventory records from kubectl text output.
//
// The package is layered leaves first:
//
//   - Field extractors (String, StringOr, Token, Int, Int64) read one
//     "key: value" line and never fail. Each returns a Field whose Defaulted
//     flag tells whether the fallback value was used.
//   - Section splitters (Split, Block) carve a block into named sub-blocks,
//     either by column-0 headers of a Grammar or by YAML indentation.
//   - Record builders (Parser.Node, Parser.Deployment) combine both into one
//     record per node or deployment.
//
// # Node descriptions
//
// NodeGrammar expects the layout of "kubectl describe node":
//
//	Name:               worker-1
//	Roles:              <none>
//	Labels:             kubernetes.io/arch=amd64
//	                    kubernetes.io/os=linux
//	Annotations:        <none>
//	CreationTimestamp:  Mon, 01 Jan 2024 00:00:00 +0000
//	...
//	Capacity:
//	  cpu:                4
//	  memory:             8140348Ki
//	Allocatable:
//	  cpu:                4
//	  ephemeral-storage:  56403987978
//	System Info:
//
// In Strict mode (the default) a description that misses a header, or has
// them out of order, yields no record at all. Lenient mode keeps any
// description with a Name header and records missing sections in
// NodeRecord.DefaultedFields.
//
// # Deployment manifests
//
// DeploymentGrammar expects the output of "kubectl get deployment -o yaml"
// with kind Deployment. Deployment never drops a record: when the grammar
// does not match, replicas and image read Undefined and the resource
// quantities stay empty.
//
// # Defaults
//
//	integers           0
//	String / Token     "undefined"
//	resource leaves    ""
//
// Parsers are immutable and safe for concurrent use.
package parser
