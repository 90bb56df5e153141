// internal/downloads/messages.go
package downloads

// Operator-facing message templates. HTML parse mode.
const (
	msgNonePending = "✅ <b>No pending downloads</b>\n\n" +
		"Every video has been confirmed!"

	msgListHeader = "📋 <b>PENDING DOWNLOADS</b>\n\n" +
		"Total: %d video(s)\n\n"

	msgListEntry = "%s <b>%s</b>\n" +
		"🆔 ID: <code>%s</code>\n" +
		"📦 Size: %.1fMB\n" +
		"⏰ Created: %dd %dh ago\n" +
		"📊 Status: %s\n" +
		"🔗 <a href='%s'>Download</a>\n" +
		"─────────────────\n\n"

	msgInvalidID = "❌ <b>Invalid ID</b>\n\n" +
		"Video <code>%s</code> not found.\n\n" +
		"Use /downloads to see available IDs"

	msgConfirmed = "✅ <b>Download Confirmed!</b>\n\n" +
		"📺 %s\n" +
		"📦 %.1fMB\n\n" +
		"🗑️ Video removed from the server\n" +
		"📋 %d download(s) still pending"

	msgConfirmedGone = "✅ <b>Confirmed</b>\n\n" +
		"⚠️ File was already removed\n" +
		"📋 %d download(s) still pending"

	msgCleanupDone = "✅ <b>Cleanup Complete</b>\n\n" +
		"🗑️ %d confirmed video(s) removed\n" +
		"📁 %d file(s) deleted\n" +
		"📋 %d still pending"

	msgExpiredDone = "⚠️ <b>Expired Cleanup</b>\n\n" +
		"🗑️ %d expired video(s) removed (>%dh)\n" +
		"📁 %d file(s) deleted\n" +
		"📋 %d still pending"
)
