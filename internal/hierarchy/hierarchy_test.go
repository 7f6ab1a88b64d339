package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

func TestTree_ChildrenOf(t *testing.T) {
	base := ir.NewClass("Lbase;")
	mid := ir.NewClass("Lmid;")
	mid.Super = base
	leaf := ir.NewClass("Lleaf;")
	leaf.Super = mid
	unrelated := ir.NewClass("Lunrelated;")

	scope := ir.NewScope([]*ir.Class{base, mid, leaf, unrelated})
	tree := Build(scope)

	children := tree.ChildrenOf(base)
	require.ElementsMatch(t, []*ir.Class{mid, leaf}, children)
}

func TestTree_ImplementorsOf(t *testing.T) {
	serializable := ir.NewClass("Ljava/io/Serializable;")

	direct := ir.NewClass("Ldirect;")
	direct.Interfaces = []*ir.Class{serializable}

	indirectBase := ir.NewClass("Lindirectbase;")
	indirectBase.Interfaces = []*ir.Class{serializable}
	indirectChild := ir.NewClass("Lindirectchild;")
	indirectChild.Super = indirectBase

	unrelated := ir.NewClass("Lunrelated;")

	scope := ir.NewScope([]*ir.Class{serializable, direct, indirectBase, indirectChild, unrelated})
	tree := Build(scope)

	implementors := tree.ImplementorsOf(serializable)
	require.ElementsMatch(t, []*ir.Class{direct, indirectBase, indirectChild}, implementors)
}
