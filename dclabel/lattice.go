package dclabel

// Lattice is the abstract contract a label type must satisfy: join and
// meet compute the least upper bound and greatest lower bound with
// respect to can-flow-to, which must be a partial order (reflexive,
// antisymmetric, transitive). DCLabel is the library's one concrete
// realization, checked against this interface at compile time in
// dclabel.go; the runtime package (labeled) and the tests use DCLabel
// directly.
type Lattice[T any] interface {
	Join(other T) T
	Meet(other T) T
	CanFlowTo(other T) bool
}
