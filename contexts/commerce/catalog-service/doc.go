// Package catalogservice implements shop product, category, contact group
// and shop ownership inside the commerce context.
//
// The module serves the flattened catalog views the promotion engine matches
// against and calls the promotion side synchronously whenever a mutation can
// change a match outcome. It keeps business rules in application/domain
// layers and isolates infrastructure concerns behind ports and adapters.
package catalogservice
