// Package inventory defines the cluster inventory records and the pipelines
// that assemble them from a source.Source.
//
// An Inventory chains three steps per use case: list identifiers, fetch the
// raw text of each one, and hand it to a Parser. Identifier lists are sorted
// before fan-out and results are re-ordered by index, so the output of a run
// is deterministic whatever Parallelism is configured.
//
// Usage:
//
//	inv := &inventory.Inventory{
//	    Source:      kubectl.New(cfg),
//	    Parser:      parser.New(),
//	    Parallelism: 4,
//	}
//	nodes, err := inv.Cluster(ctx)
//
// A source failure aborts the whole call; there is no partial result. Text
// that does not match a grammar is not an error: nodes are dropped and
// deployments keep default values, both counted in the package metrics.
package inventory
