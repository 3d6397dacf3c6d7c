package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelforge-server/internal/models"
)

func node(id int64, parentID *int64, order int) models.OutlineNode {
	return models.OutlineNode{ID: id, ProjectID: 1, ParentID: parentID, NodeOrder: order}
}

func ptr(v int64) *int64 { return &v }

func TestBuildForest(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		forest := BuildForest(nil)
		assert.Empty(t, forest)
	})

	t.Run("SiblingsOrderedByNodeOrder", func(t *testing.T) {
		nodes := []models.OutlineNode{
			node(1, nil, 2),
			node(2, nil, 0),
			node(3, nil, 1),
		}
		forest := BuildForest(nodes)

		require.Len(t, forest, 3)
		assert.Equal(t, int64(2), forest[0].ID)
		assert.Equal(t, int64(3), forest[1].ID)
		assert.Equal(t, int64(1), forest[2].ID)
	})

	t.Run("NestedOrdering", func(t *testing.T) {
		nodes := []models.OutlineNode{
			node(1, nil, 0),
			node(2, ptr(1), 1),
			node(3, ptr(1), 0),
			node(4, ptr(3), 0),
		}
		forest := BuildForest(nodes)

		require.Len(t, forest, 1)
		root := forest[0]
		require.Len(t, root.Children, 2)
		assert.Equal(t, int64(3), root.Children[0].ID)
		assert.Equal(t, int64(2), root.Children[1].ID)
		require.Len(t, root.Children[0].Children, 1)
		assert.Equal(t, int64(4), root.Children[0].Children[0].ID)
	})

	t.Run("EqualOrderFallsBackToID", func(t *testing.T) {
		nodes := []models.OutlineNode{
			node(5, nil, 0),
			node(2, nil, 0),
			node(9, nil, 0),
		}
		forest := BuildForest(nodes)

		require.Len(t, forest, 3)
		assert.Equal(t, int64(2), forest[0].ID)
		assert.Equal(t, int64(5), forest[1].ID)
		assert.Equal(t, int64(9), forest[2].ID)
	})

	t.Run("OrphanBecomesRoot", func(t *testing.T) {
		nodes := []models.OutlineNode{
			node(1, nil, 0),
			node(2, ptr(99), 1),
		}
		forest := BuildForest(nodes)

		require.Len(t, forest, 2)
		assert.Equal(t, int64(1), forest[0].ID)
		assert.Equal(t, int64(2), forest[1].ID)
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		nodes := []models.OutlineNode{
			node(1, nil, 0),
			node(2, ptr(1), 0),
		}
		BuildForest(nodes)

		assert.Nil(t, nodes[0].Children)
		assert.Nil(t, nodes[1].Children)
	})
}
