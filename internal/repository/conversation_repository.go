package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"novelforge-server/internal/models"
)

// NewMessage - входящее сообщение при создании или обновлении диалога.
type NewMessage struct {
	Role    string
	Content string
}

// ConversationRepository - хранилище диалогов. Диалог и его сообщения
// изменяются в одной транзакции: обновление заменяет список сообщений
// целиком, чтение всегда возвращает диалог вместе с сообщениями.
type ConversationRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewConversationRepository создает новый экземпляр ConversationRepository.
func NewConversationRepository(pool *pgxpool.Pool, logger *zap.Logger) *ConversationRepository {
	return &ConversationRepository{pool: pool, logger: logger.Named("ConversationRepo")}
}

// Create создает диалог и его сообщения атомарно.
func (r *ConversationRepository) Create(ctx context.Context, title string, projectID int64, messages []NewMessage) (*models.Conversation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var conversation models.Conversation
	err = pgxscan.Get(ctx, tx, &conversation,
		`INSERT INTO conversations (title, project_id) VALUES ($1, $2)
		 RETURNING id, title, project_id, created_at`,
		title, projectID,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	conversation.Messages, err = insertMessages(ctx, tx, conversation.ID, messages)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &conversation, nil
}

// Get возвращает диалог вместе с сообщениями или models.ErrNotFound.
func (r *ConversationRepository) Get(ctx context.Context, id int64) (*models.Conversation, error) {
	var conversation models.Conversation
	err := pgxscan.Get(ctx, r.pool, &conversation,
		"SELECT id, title, project_id, created_at FROM conversations WHERE id = $1", id)
	if err != nil {
		if translated := translateError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	conversation.Messages, err = r.listMessages(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// List возвращает страницу диалогов проекта (projectID == nil - всех проектов)
// от новых к старым, каждый с полным списком сообщений.
func (r *ConversationRepository) List(ctx context.Context, projectID *int64, skip, limit int) ([]models.Conversation, error) {
	skip, limit = clampPage(skip, limit)

	query := `SELECT id, title, project_id, created_at FROM conversations
		 ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	args := []any{limit, skip}
	if projectID != nil {
		query = `SELECT id, title, project_id, created_at FROM conversations
			 WHERE project_id = $3
			 ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
		args = append(args, *projectID)
	}

	conversations := []models.Conversation{}
	if err := pgxscan.Select(ctx, r.pool, &conversations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	for i := range conversations {
		messages, err := r.listMessages(ctx, conversations[i].ID)
		if err != nil {
			return nil, err
		}
		conversations[i].Messages = messages
	}
	return conversations, nil
}

// Update изменяет заголовок и/или заменяет список сообщений. Оба аргумента
// опциональны: nil означает "не трогать". Замена сообщений удаляет старые
// и вставляет новые в одной транзакции.
func (r *ConversationRepository) Update(ctx context.Context, id int64, title *string, messages []NewMessage) (*models.Conversation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var conversation models.Conversation
	if title != nil {
		err = pgxscan.Get(ctx, tx, &conversation,
			`UPDATE conversations SET title = $1 WHERE id = $2
			 RETURNING id, title, project_id, created_at`,
			*title, id,
		)
	} else {
		err = pgxscan.Get(ctx, tx, &conversation,
			"SELECT id, title, project_id, created_at FROM conversations WHERE id = $1", id)
	}
	if err != nil {
		if translated := translateError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}

	if messages != nil {
		if _, err := tx.Exec(ctx, "DELETE FROM messages WHERE conversation_id = $1", id); err != nil {
			return nil, fmt.Errorf("failed to replace messages: %w", err)
		}
		conversation.Messages, err = insertMessages(ctx, tx, id, messages)
		if err != nil {
			return nil, err
		}
	} else {
		rows := []models.Message{}
		err = pgxscan.Select(ctx, tx, &rows,
			`SELECT id, role, content, conversation_id, created_at FROM messages
			 WHERE conversation_id = $1 ORDER BY id`, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		conversation.Messages = rows
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &conversation, nil
}

// Delete удаляет диалог и возвращает его снимок с сообщениями.
// Сообщения удаляются каскадом на уровне БД.
func (r *ConversationRepository) Delete(ctx context.Context, id int64) (*models.Conversation, error) {
	snapshot, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.pool.Exec(ctx, "DELETE FROM conversations WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to delete conversation: %w", err)
	}
	r.logger.Debug("conversation deleted", zap.Int64("id", id))
	return snapshot, nil
}

func (r *ConversationRepository) listMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	messages := []models.Message{}
	err := pgxscan.Select(ctx, r.pool, &messages,
		`SELECT id, role, content, conversation_id, created_at FROM messages
		 WHERE conversation_id = $1 ORDER BY id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func insertMessages(ctx context.Context, db DBTX, conversationID int64, messages []NewMessage) ([]models.Message, error) {
	inserted := make([]models.Message, 0, len(messages))
	for _, message := range messages {
		var row models.Message
		err := pgxscan.Get(ctx, db, &row,
			`INSERT INTO messages (role, content, conversation_id) VALUES ($1, $2, $3)
			 RETURNING id, role, content, conversation_id, created_at`,
			message.Role, message.Content, conversationID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert message: %w", err)
		}
		inserted = append(inserted, row)
	}
	return inserted, nil
}
