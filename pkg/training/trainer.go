package training

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/events"
	"ai-chatbot-be/pkg/ingest"
	"ai-chatbot-be/pkg/knowledge"
	"ai-chatbot-be/pkg/widget"
)

// Trainer drives the operator training conversation. Every reply is a
// user-facing string; failures never propagate past this boundary.
type Trainer struct {
	operators  map[string]struct{}
	sessions   SessionStore
	store      knowledge.Store
	dispatcher *ingest.Dispatcher
	widgets    *widget.Generator
	publisher  events.IPublisher
	stats      *events.TrainingStats
	logger     logger.ILogger
	now        func() time.Time
}

func NewTrainer(
	operators []string,
	sessions SessionStore,
	store knowledge.Store,
	dispatcher *ingest.Dispatcher,
	widgets *widget.Generator,
	publisher events.IPublisher,
	stats *events.TrainingStats,
	log logger.ILogger,
) *Trainer {
	allowed := make(map[string]struct{}, len(operators))
	for _, op := range operators {
		allowed[op] = struct{}{}
	}
	return &Trainer{
		operators:  allowed,
		sessions:   sessions,
		store:      store,
		dispatcher: dispatcher,
		widgets:    widgets,
		publisher:  publisher,
		stats:      stats,
		logger:     log,
		now:        time.Now,
	}
}

func (t *Trainer) IsOperator(id string) bool {
	_, ok := t.operators[id]
	return ok
}

// HandleMessage routes one operator message through the state machine.
// Non-operators are rejected before any session is created.
func (t *Trainer) HandleMessage(ctx context.Context, from, message string) string {
	if !t.IsOperator(from) {
		return RejectionMessage
	}

	session := t.sessions.GetOrCreate(from)
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	var reply string
	if strings.HasPrefix(trimmed, "/") {
		reply = t.handleCommand(ctx, session, lower)
	} else {
		switch session.State {
		case StateIdle:
			reply = t.handleMenuSelection(ctx, session, lower)
		case StateAddingFAQ:
			session.State = StateWaitingQuestion
			reply = questionPrompt
		case StateWaitingQuestion:
			session.Draft.Question = trimmed
			session.State = StateWaitingAnswer
			reply = answerPrompt(trimmed)
		case StateWaitingAnswer:
			session.Draft.Answer = trimmed
			session.State = StateConfirmTraining
			reply = confirmFAQMessage(session.Draft.Question, trimmed)
		case StateAddingInfo:
			session.Draft.Content = trimmed
			session.Draft.Type = knowledge.TypeCompanyInfo
			session.State = StateConfirmTraining
			reply = confirmInfoMessage(trimmed)
		case StateConfirmTraining:
			reply = t.handleConfirmation(ctx, session, lower)
		case StateConfiguringWidget:
			reply = t.handleWidgetFlow(session, lower)
		default:
			session.State = StateIdle
			session.ClearDraft()
			reply = mainMenu
		}
	}

	t.sessions.Save(session)
	return reply
}

func (t *Trainer) handleCommand(ctx context.Context, session *Session, command string) string {
	switch command {
	case "/menu", "/start", "/setup":
		session.State = StateIdle
		return mainMenu

	case "/help":
		return helpMenu

	case "/status":
		return t.showStatus(ctx)

	case "/cancel":
		session.Reset()
		return cancelledMessage

	case "/clear", "/cleanup":
		count := t.sessions.Reset()
		// The caller's session object outlives the store flush and is
		// saved again after command handling, so reset it too.
		session.Reset()
		return fmt.Sprintf("🧹 Cleared %d training session(s).", count)

	case "/logs":
		return t.showRecentLogs()

	case "/restart":
		t.sessions.Reset()
		session.Reset()
		return "🔄 *Service Restart Initiated*\n\n✅ Training sessions cleared\n\nType /status in a few seconds to check."

	case "/backup":
		return t.showBackup(ctx)

	case "/widget":
		return t.generateWidget(widget.Config{})

	case "/train":
		session.State = StateIdle
		return t.handleMenuSelection(ctx, session, "1")

	case "/add-faq":
		session.State = StateAddingFAQ
		return "📝 *Adding FAQ*\n\nPlease send the question you want to add:"

	case "/bulk-train":
		return bulkPrompt

	case "/upload", "/file":
		return uploadPrompt

	default:
		return unknownCommandMessage(command)
	}
}

func (t *Trainer) handleMenuSelection(ctx context.Context, session *Session, selection string) string {
	switch selection {
	case "1":
		session.State = StateWaitingQuestion
		return questionPrompt
	case "2":
		session.State = StateAddingInfo
		return infoPrompt
	case "3":
		return uploadPrompt
	case "4":
		return bulkPrompt
	case "5":
		session.State = StateConfiguringWidget
		session.Draft.Widget = &widget.Config{}
		return widgetPrompt
	case "6":
		return "🌐 *Website Widget Status*\n\n✅ Widget System: Active\n\nType *5* to generate a new widget or /menu for options."
	case "7":
		return t.showStatus(ctx)
	case "8":
		return "👥 *Add New Operator*\n\nOperators are granted through the OPERATOR_IDS setting. Add the new identifier there and restart the service."
	case "9":
		return helpMenu
	default:
		return "❓ Please choose a number from 1-9, or type /menu to see options again."
	}
}

func (t *Trainer) handleConfirmation(ctx context.Context, session *Session, command string) string {
	switch command {
	case "yes", "y":
		return t.commit(ctx, session)

	case "more", "m":
		if doc, ok := session.Draft.Document(); ok {
			session.Pending = append(session.Pending, doc)
		}
		session.State = StateIdle
		session.ClearDraft()
		return savedForLaterMessage(len(session.Pending))

	case "cancel", "c":
		session.Reset()
		return "❌ Training cancelled.\n\n" + mainMenu

	default:
		return confirmReprompt
	}
}

// commit drains Pending plus any document derivable from the draft,
// stamps provenance, and hands the batch to the knowledge store. The
// session only resets after a successful store call so a failed commit
// can be retried with the same data.
func (t *Trainer) commit(ctx context.Context, session *Session) string {
	documents := make([]knowledge.Document, 0, len(session.Pending)+1)
	for _, doc := range session.Pending {
		documents = append(documents, knowledge.Document{
			Content:  doc.Content,
			Metadata: knowledge.CloneMetadata(doc.Metadata),
		})
	}
	if doc, ok := session.Draft.Document(); ok {
		documents = append(documents, doc)
	}

	if len(documents) == 0 {
		return nothingToTrainMessage
	}

	stamp := t.now().UTC().Format(time.RFC3339)
	for i := range documents {
		if documents[i].Metadata == nil {
			documents[i].Metadata = map[string]interface{}{}
		}
		documents[i].Metadata["addedBy"] = session.Operator
		documents[i].Metadata["addedAt"] = stamp
	}

	stored, err := t.store.AddDocuments(ctx, documents)
	if err != nil {
		t.logger.Error("training", "Commit failed", map[string]interface{}{
			"operator": session.Operator,
			"error":    err.Error(),
		})
		return trainingFailedMessage
	}

	session.Reset()
	t.publishTrained(ctx, "chat", stored, session.Operator)
	return trainedMessage(stored)
}

// HandleFile ingests an uploaded file outside the state machine. The
// session state is untouched; parsing and storage happen immediately.
func (t *Trainer) HandleFile(ctx context.Context, from string, file ingest.File) string {
	if !t.IsOperator(from) {
		return RejectionFileMessage
	}

	documents := t.dispatcher.Parse(ctx, file)
	if len(documents) == 0 {
		return fileEmptyMessage(file.Name)
	}

	stamp := t.now().UTC().Format(time.RFC3339)
	for i := range documents {
		if documents[i].Metadata == nil {
			documents[i].Metadata = map[string]interface{}{}
		}
		documents[i].Metadata["addedBy"] = from
		documents[i].Metadata["addedAt"] = stamp
	}

	stored, err := t.store.AddDocuments(ctx, documents)
	if err != nil {
		t.logger.Error("training", "File ingestion failed", map[string]interface{}{
			"file":  file.Name,
			"error": err.Error(),
		})
		return "❌ File upload failed. Please try again."
	}

	t.publishTrained(ctx, file.Name, stored, from)
	return fileProcessedMessage(file.Name, stored)
}

func (t *Trainer) handleWidgetFlow(session *Session, command string) string {
	switch command {
	case "generate", "g":
		cfg := widget.Config{}
		if session.Draft.Widget != nil {
			cfg = *session.Draft.Widget
		}
		session.State = StateIdle
		session.ClearDraft()
		return t.generateWidget(cfg)

	case "cancel", "c":
		session.State = StateIdle
		session.ClearDraft()
		return "❌ Widget configuration cancelled.\n\n" + mainMenu

	default:
		return "Please type *GENERATE* to create the widget or *CANCEL* to go back."
	}
}

func (t *Trainer) generateWidget(cfg widget.Config) string {
	embedCode := t.widgets.EmbedCode(cfg)
	return fmt.Sprintf("🎉 *Website Widget Generated!*\n\n*📋 Embed Code:*\n```html\n%s\n```\n\n*How to use:*\n1. Copy the code above\n2. Paste it before your site's closing </body> tag\n3. Publish, and the chat widget appears automatically\n\nType /menu for more options!", embedCode)
}

func (t *Trainer) showStatus(ctx context.Context) string {
	count, err := t.store.Count(ctx)
	if err != nil {
		return "📊 *Training Status*\n\n⚠️ Could not fetch detailed stats\n✅ System is running\n\nType /menu for training options."
	}

	status := fmt.Sprintf("📊 *Training Status*\n\n✅ Knowledge Items: %d\n✅ Operators: %d", count, len(t.operators))
	if t.stats != nil {
		snapshot := t.stats.Snapshot()
		if snapshot.Batches > 0 {
			status += fmt.Sprintf("\n✅ Trained Batches: %d\n✅ Last Trained: %s (%s)",
				snapshot.Batches,
				snapshot.LastTrained.Format(time.RFC3339),
				snapshot.LastSource)
		}
	}
	return status + "\n\nType /menu for training options."
}

func (t *Trainer) showBackup(ctx context.Context) string {
	count, err := t.store.Count(ctx)
	if err != nil {
		return "💾 *Knowledge Base Backup*\n\n⚠️ Could not reach the vector store.\n\nTry again in a moment."
	}
	return fmt.Sprintf("💾 *Knowledge Base Backup*\n\n📊 Total Documents: %d\n🕐 Snapshot Time: %s\n\n✅ The vector store handles persistence and backups.", count, t.now().Format(time.RFC1123))
}

func (t *Trainer) showRecentLogs() string {
	entries, err := t.logger.GetLogs("", 10, 0)
	if err != nil || len(entries) == 0 {
		return "📋 *Recent Logs*\n\nNo log entries available."
	}

	var b strings.Builder
	b.WriteString("📋 *Recent Logs*\n")
	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("\n[%s] %s: %s", entry.Timestamp, entry.Level, entry.Message))
	}
	return b.String()
}

func (t *Trainer) publishTrained(ctx context.Context, source string, items int, operator string) {
	if t.publisher == nil {
		return
	}
	event := events.KnowledgeTrainedEvent{
		Source:     source,
		Items:      items,
		AddedBy:    operator,
		OccurredAt: t.now(),
	}
	if err := t.publisher.PublishTrained(ctx, event); err != nil {
		t.logger.Warn("training", "Failed to publish trained event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
