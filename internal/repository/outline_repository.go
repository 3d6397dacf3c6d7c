package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"

	"novelforge-server/internal/models"
)

var outlineSchema = Schema{
	Table: "outline_nodes",
	Columns: []string{
		"id", "title", "content_brief", "generated_content",
		"word_count_target", "status", "project_id", "parent_id", "node_order",
	},
}

// OutlineRepository - хранилище узлов плана. Помимо общих операций
// проверяет принадлежность родителя тому же проекту и собирает лес.
type OutlineRepository struct {
	*CRUD[models.OutlineNode]
	db DBTX
}

// NewOutlineRepository создает новый экземпляр OutlineRepository.
func NewOutlineRepository(db DBTX, logger *zap.Logger) *OutlineRepository {
	return &OutlineRepository{
		CRUD: NewCRUD[models.OutlineNode](db, outlineSchema, logger.Named("OutlineRepo")),
		db:   db,
	}
}

// Create вставляет узел, предварительно убедившись, что родительский узел
// принадлежит тому же проекту.
func (r *OutlineRepository) Create(ctx context.Context, fields Fields) (*models.OutlineNode, error) {
	if err := r.checkParent(ctx, fields); err != nil {
		return nil, err
	}
	return r.CRUD.Create(ctx, fields)
}

// Update применяет частичное обновление узла с той же проверкой родителя.
// Если project_id не входит в набор полей, он берется из текущей записи.
func (r *OutlineRepository) Update(ctx context.Context, id int64, fields Fields) (*models.OutlineNode, error) {
	if parentID, ok := parentFromFields(fields); ok && parentID != nil {
		projectID, hasProject := projectFromFields(fields)
		if !hasProject {
			current, err := r.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			projectID = current.ProjectID
		}
		if err := r.checkSameProject(ctx, *parentID, projectID); err != nil {
			return nil, err
		}
	}
	return r.CRUD.Update(ctx, id, fields)
}

// GetForestByProject возвращает все узлы проекта в виде леса. Узлы читаются
// одним запросом, дерево собирается в памяти; порядок на каждом уровне
// задается node_order.
func (r *OutlineRepository) GetForestByProject(ctx context.Context, projectID int64) ([]*models.OutlineNode, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE project_id = $1 ORDER BY node_order, id",
		outlineSchema.selectList(), outlineSchema.Table,
	)

	nodes := []models.OutlineNode{}
	if err := pgxscan.Select(ctx, r.db, &nodes, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to list outline nodes: %w", err)
	}
	return BuildForest(nodes), nil
}

func (r *OutlineRepository) checkParent(ctx context.Context, fields Fields) error {
	parentID, ok := parentFromFields(fields)
	if !ok || parentID == nil {
		return nil
	}
	projectID, ok := projectFromFields(fields)
	if !ok {
		return fmt.Errorf("%w: project_id is required", models.ErrBadRequest)
	}
	return r.checkSameProject(ctx, *parentID, projectID)
}

// checkSameProject проверяет, что родительский узел существует и относится
// к тому же проекту, что и дочерний.
func (r *OutlineRepository) checkSameProject(ctx context.Context, parentID, projectID int64) error {
	var parentProject int64
	query := fmt.Sprintf("SELECT project_id FROM %s WHERE id = $1", outlineSchema.Table)
	if err := pgxscan.Get(ctx, r.db, &parentProject, query, parentID); err != nil {
		if translated := translateError(err); translated != err {
			return fmt.Errorf("%w: parent node does not exist", models.ErrBadRequest)
		}
		return fmt.Errorf("failed to check parent node: %w", err)
	}
	if parentProject != projectID {
		return fmt.Errorf("%w: parent node belongs to another project", models.ErrBadRequest)
	}
	return nil
}

func parentFromFields(fields Fields) (*int64, bool) {
	value, ok := fields.Lookup("parent_id")
	if !ok {
		return nil, false
	}
	switch v := value.(type) {
	case int64:
		return &v, true
	case *int64:
		return v, true
	}
	return nil, true
}

func projectFromFields(fields Fields) (int64, bool) {
	value, ok := fields.Lookup("project_id")
	if !ok {
		return 0, false
	}
	projectID, _ := value.(int64)
	return projectID, true
}

// BuildForest собирает лес из плоского списка узлов. Функция чистая:
// вход не мутируется, используется копия узлов. Узлы с отсутствующим
// в списке родителем поднимаются на верхний уровень, на каждом уровне
// соседи упорядочены по node_order (при равенстве - по id).
func BuildForest(nodes []models.OutlineNode) []*models.OutlineNode {
	copies := make([]*models.OutlineNode, len(nodes))
	byID := make(map[int64]*models.OutlineNode, len(nodes))
	for i := range nodes {
		node := nodes[i]
		node.Children = []*models.OutlineNode{}
		copies[i] = &node
		byID[node.ID] = &node
	}

	roots := []*models.OutlineNode{}
	for _, node := range copies {
		if node.ParentID != nil {
			if parent, ok := byID[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortSiblings(roots)
	for _, node := range copies {
		sortSiblings(node.Children)
	}
	return roots
}

func sortSiblings(nodes []*models.OutlineNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].NodeOrder != nodes[j].NodeOrder {
			return nodes[i].NodeOrder < nodes[j].NodeOrder
		}
		return nodes[i].ID < nodes[j].ID
	})
}
