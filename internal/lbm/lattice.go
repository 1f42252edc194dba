package lbm

// Node is a lattice site: nine populations plus a shared reference to the
// collision operator that acts on them.
type Node struct {
	F        Populations
	Dynamics Dynamics
}

// Lattice stores an lx*ly interior surrounded by a one-cell ghost border in
// row-major order. Interior coordinates run from 1 to lx and 1 to ly; 0 and
// lx+1 (ly+1) address the ghost layer.
type Lattice struct {
	lx, ly int
	stride int
	nodes  []Node
}

func newLattice(lx, ly int) *Lattice {
	return &Lattice{
		lx:     lx,
		ly:     ly,
		stride: lx + 2,
		nodes:  make([]Node, (lx+2)*(ly+2)),
	}
}

// index maps padded coordinates to the backing slice.
func (l *Lattice) index(x, y int) int { return y*l.stride + x }

// At returns the node at padded coordinates (x, y).
func (l *Lattice) At(x, y int) *Node { return &l.nodes[l.index(x, y)] }

// Size returns the interior dimensions.
func (l *Lattice) Size() (lx, ly int) { return l.lx, l.ly }
