package models

import "time"

// Conversation представляет диалог с ассистентом в рамках проекта.
// Владеет упорядоченным списком сообщений; удаление диалога удаляет сообщения.
type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Messages []Message `json:"messages" db:"-"`
}

// Message представляет одно сообщение диалога.
type Message struct {
	ID             int64     `json:"id" db:"id"`
	Role           string    `json:"role" db:"role"`
	Content        string    `json:"content" db:"content"`
	ConversationID int64     `json:"conversation_id" db:"conversation_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
