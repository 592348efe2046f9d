package knowledge

import "context"

var defaultDocuments = []Document{
	{
		Content:  "This is an AI support chatbot backed by a vector knowledge base. It can answer questions based on the knowledge that has been provided to it.",
		Metadata: map[string]interface{}{"type": "system_info"},
	},
	{
		Content:  "To get help, you can ask questions and the bot will search its knowledge base to provide relevant answers.",
		Metadata: map[string]interface{}{"type": "usage_info"},
	},
}

// SeedDefaults inserts the baseline system/usage documents so a fresh
// deployment answers something sensible before any training happens.
func SeedDefaults(ctx context.Context, store Store) (int, error) {
	if err := store.EnsureCollection(ctx); err != nil {
		return 0, err
	}
	return store.AddDocuments(ctx, defaultDocuments)
}
