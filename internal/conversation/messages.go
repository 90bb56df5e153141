// internal/conversation/messages.go
package conversation

// Operator-facing message templates. HTML parse mode.
const (
	msgIntro = "🎬 <b>Daily Video Production</b>\n\n" +
		"Let's create a new video!\n\n" +
		"Answer the next questions to get started.\n" +
		"⏱️ You have 10 minutes for each answer.\n\n" +
		"🛑 Use <b>/cancel</b> at any time to cancel"

	msgTitlePrompt = "1️⃣ <b>VIDEO TITLE</b>\n\n" +
		"Send the title for your video.\n\n" +
		"<i>Example: The Forgotten Heroes of D-Day</i>\n\n" +
		"💡 Or send /cancel to cancel"

	msgTitleEcho = "✅ Title received!\n\n<b>%s</b>"

	msgDescriptionPrompt = "2️⃣ <b>VIDEO DESCRIPTION</b>\n\n" +
		"Send the description that will be published with the video.\n\n" +
		"<i>Two or three paragraphs explaining the content works well.</i>\n\n" +
		"💡 Or send /cancel to cancel"

	msgDescriptionEcho = "✅ Description received!\n\n<i>%s</i>"

	msgTagsPrompt = "3️⃣ <b>VIDEO TAGS</b>\n\n" +
		"Send the tags separated by commas.\n\n" +
		"<i>Example: WWII, D-Day, History, Documentary, Normandy</i>\n\n" +
		"💡 Or send /cancel to cancel"

	msgTagsEcho = "✅ Tags received: %d tags"

	msgTagsEmpty = "⚠️ No valid tags found!\n\n" +
		"Send the tags separated by commas.\n" +
		"<i>Example: WWII, D-Day, History</i>"

	msgScriptPrompt = "4️⃣ <b>NARRATION SCRIPT</b>\n\n" +
		"You can send it two ways:\n\n" +
		"📝 <b>Option 1: Direct text</b>\n" +
		"Paste the script as one or more messages.\n" +
		"If it's long, send it in parts and type: <b>DONE</b>\n\n" +
		"📄 <b>Option 2: TXT file (recommended)</b>\n" +
		"Send a .txt file as a document.\n" +
		"No size limit!\n\n" +
		"💡 Or type /cancel to cancel"

	msgScriptPartAck = "✅ <b>Part %d received!</b>\n\n" +
		"📊 Words so far: %d\n\n" +
		"➕ Send more parts if needed\n" +
		"✔️ Or type <b>DONE</b> when finished"

	msgScriptEmpty = "⚠️ No script has been sent yet!"

	msgDocumentReceived = "📄 File received! Processing..."

	msgDocumentError = "❌ Error processing the file. Send the script as text instead."

	msgDocumentReplaces = "📄 The uploaded file replaces the %d part(s) sent earlier."

	msgReminder = "⏰ Still waiting for your reply...\n" +
		"⏱️ %d minutes remaining\n\n" +
		"💡 Use /cancel to cancel the production"

	msgCancelled = "🛑 <b>PRODUCTION CANCELLED</b>\n\n" +
		"The production was cancelled successfully.\n" +
		"The workflow will shut down."

	msgStepTimeout = "❌ Time is up. Production cancelled."

	msgSummary = "✅ <b>Script received!</b>\n\n" +
		"📊 <b>Stats:</b>\n" +
		"• Words: %d\n" +
		"• Estimated duration: %.1f minutes\n" +
		"• Segments (~30s): %d\n\n" +
		"📝 <b>Preview:</b>\n<i>%s</i>\n\n" +
		"🎬 Starting production..."
)
