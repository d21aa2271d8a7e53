// Package nemo contains the core components of Nemo, a compiler for distributed dataflow
// execution plans. This root package defines types which are employed when constructing,
// optimizing and shipping plan DAGs, and is an excellent overview of the compiler's key
// concepts.
package nemo
