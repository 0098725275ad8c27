package resource

import "github.com/enescakir/emoji"

// validation and admin panel messages
const (
	TextEnterUsername      = "Please enter a username"
	TextSelectUserFirst    = "Please select a user first"
	TextSelectUserToDelete = "Please select a user to delete"
	TextCannotManageAdmin  = "Cannot manage achievements for admin user"
	TextCannotDeleteAdmin  = "Cannot delete admin user"
	TextSelfDeleteWarning  = "Warning: You are trying to delete your own account. This will log you out immediately."
	TextAchievementToggled = "Achievement %s for %s"
	TextUserDeleted        = "User %s has been deleted successfully"
	TextUnlocked           = "unlocked"
	TextLocked             = "locked"
	TextLoginCancelled     = "Login cancelled"
	TextLoggedOut          = "Logged out"
	TextNotLoggedIn        = "Not logged in"
)

// prompts and notices
const (
	TextCreateUserPrompt = "The user %s doesn't exist yet. Would you like to create this user account?"
	TextLoginPrompt      = "Enter your username (no password needed)"
	TextAdminNoPersonal  = "Personal statistics are not available for the admin account."
	TextNoAchievements   = "No achievements found"
	TextNoUsers          = "No users found"
	TextRetryHint        = "Run the command again to retry."
	TextDeleteConfirm    = "Delete user %s and all their achievements?"
	TextNoUserSelected   = "Select a user to manage their achievements"
	TextRedirected       = "%s is not available, showing %s"
)

// view titles
var (
	TitleLogin           = emoji.Trophy.String() + " Achievements"
	SubtitleLogin        = "Track your progress and unlock achievements"
	TitleAchievements    = "Achievements"
	TitleAllAchievements = "All Achievements"
	SubtitleCatalog      = "Complete list of all available achievements"
	TitleStatistics      = "Statistics"
	TitleAdmin           = "Admin Panel"
	SubtitleAdmin        = "User & Achievement Management"
	TitleLogout          = "Logout"
)
