package models

// NodeStatus определяет статус работы над узлом плана.
type NodeStatus string

const (
	NodeStatusTodo       NodeStatus = "todo"
	NodeStatusInProgress NodeStatus = "in_progress"
	NodeStatusDone       NodeStatus = "done"
)

// ValidNodeStatus проверяет, что значение принадлежит перечислению.
func ValidNodeStatus(s NodeStatus) bool {
	switch s {
	case NodeStatusTodo, NodeStatusInProgress, NodeStatusDone:
		return true
	}
	return false
}

// OutlineNode представляет узел плана романа. Узлы одного проекта образуют лес:
// узлы с ParentID == nil являются корнями, порядок среди соседей задает NodeOrder.
type OutlineNode struct {
	ID               int64      `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	ContentBrief     string     `json:"content_brief" db:"content_brief"`
	GeneratedContent string     `json:"generated_content" db:"generated_content"`
	WordCountTarget  int        `json:"word_count_target" db:"word_count_target"`
	Status           NodeStatus `json:"status" db:"status"`
	ProjectID        int64      `json:"project_id" db:"project_id"`
	ParentID         *int64     `json:"parent_id" db:"parent_id"`
	NodeOrder        int        `json:"node_order" db:"node_order"`

	// Children заполняется только при выдаче дерева, в БД не хранится.
	Children []*OutlineNode `json:"children" db:"-"`
}
