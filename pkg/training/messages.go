package training

import "fmt"

const RejectionMessage = "❌ You don't have operator privileges. Contact the bot owner to get operator access."

const RejectionFileMessage = "❌ Operator access required for file uploads."

const mainMenu = `🤖 *AI Training Menu*

Choose what you'd like to do:

*📚 Training Options:*
1️⃣ Add FAQ (Question & Answer)
2️⃣ Add Company Info
3️⃣ Upload Document/File
4️⃣ Bulk Training Mode

*🌐 Web Integration:*
5️⃣ Generate Website Widget
6️⃣ View Widget Status

*⚙️ Management:*
7️⃣ View Training Status
8️⃣ Add New Operator
9️⃣ Help & Instructions

*Commands:*
• Type the number (1-9) to select
• Type /cancel to stop training
• Type /menu to see this menu again
• Type /help for detailed instructions`

const helpMenu = `📖 *Training Guide*

*FAQ Training (Option 1):*
Add question and answer pairs one at a time.
Example: "What are your business hours?" / "Monday-Friday 9AM-5PM"

*Company Info (Option 2):*
Paste longer text blocks.
Example: Company description, services, policies

*File Upload:* Send documents directly
Supported: .txt, .md, .csv, .json, .pdf, .docx files

*🔧 Tips:*
• Write naturally, like you're talking to customers
• Be specific and detailed in answers
• Use common words customers would use
• Test your training by asking the bot questions

*Commands:*
/menu - Show main menu
/status - Check training progress
/cancel - Stop current training
/help - Show this help

Ready to start? Type /menu`

const questionPrompt = `❓ *Add FAQ Training*

Step 1: What question do customers ask?

Examples:
• "What are your business hours?"
• "How much does it cost?"
• "Do you offer refunds?"

Type the question:`

const infoPrompt = `📝 *Add Company Information*

Please type or paste your company information. This could be:
• About us
• Services description
• Policies
• Contact details
• Any other company info

Just send it as a regular message:`

const uploadPrompt = `📎 *Upload Document*

*How to upload:*
1. Send me any document file (.txt, .md, .csv, .json, .pdf, .docx)
2. I'll process it automatically
3. All text content will be added to training

Send your file now:`

const bulkPrompt = `🚀 *Bulk Training Mode*

Send multiple training items by file upload:
• .txt or .md files with FAQ content
• .csv files with question,answer rows
• .json files with structured data
• .pdf or .docx documents

Just attach the file and I'll process it automatically!`

const widgetPrompt = `🌐 *Website Widget Generator*

I'll help you create a customizable chat widget for your website!

*Default Settings:*
• Bot Name: AI Assistant
• Color: Blue theme
• Position: Bottom right

*Options:*
✅ Type *GENERATE* to create the widget
❌ Type *CANCEL* to go back

What would you like to do?`

const confirmReprompt = "Please type *YES* to confirm, *MORE* to add more, or *CANCEL* to discard."

const cancelledMessage = "✅ Training session cancelled. Type /menu to start again."

const nothingToTrainMessage = "❌ No training data to process."

const trainingFailedMessage = "❌ Training failed. Please try again or contact support."

func answerPrompt(question string) string {
	return fmt.Sprintf("✅ Question saved: %q\n\n💬 Step 2: What's the answer?\n\nBe specific and helpful. Write like you're personally helping the customer.\n\nType the answer:", question)
}

func confirmFAQMessage(question, answer string) string {
	return fmt.Sprintf("✅ *Ready to Train!*\n\n*Question:* %s\n*Answer:* %s\n\n*Options:*\n✅ Type *YES* to add this training\n🔄 Type *MORE* to add another FAQ\n❌ Type *CANCEL* to discard", question, answer)
}

func confirmInfoMessage(content string) string {
	preview := content
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return fmt.Sprintf("✅ *Ready to Train!*\n\n*Content Added:*\n%s\n\n*Options:*\n✅ Type *YES* to add this training\n🔄 Type *MORE* to add more info\n❌ Type *CANCEL* to discard", preview)
}

func savedForLaterMessage(pending int) string {
	return fmt.Sprintf("✅ Training data saved! (%d items total)\n\n%s", pending, mainMenu)
}

func trainedMessage(count int) string {
	return fmt.Sprintf("🎉 *Training Successful!*\n\n✅ Added %d training item(s)\n✅ AI is now smarter!\n\n*Test it:* Ask the bot a question to see if it learned!\n\n%s", count, mainMenu)
}

func fileProcessedMessage(fileName string, count int) string {
	return fmt.Sprintf("🎉 *File Uploaded Successfully!*\n\n📄 File: %s\n📊 Processed: %d content chunks\n✅ Added to the knowledge base\n\nType /menu for more training options!", fileName, count)
}

func fileEmptyMessage(fileName string) string {
	return fmt.Sprintf("❌ *File Processing Failed*\n\n📄 File: %s\n⚠️ No content could be extracted\n\n*Supported formats:*\n• .txt, .md (plain text)\n• .csv (question,answer format)\n• .json (structured data)\n• .pdf (PDF documents)\n• .docx (Word documents)", fileName)
}

func unknownCommandMessage(command string) string {
	return fmt.Sprintf("❓ Unknown command: %s\n\nType /menu to see all available commands.", command)
}
