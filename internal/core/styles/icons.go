package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconGitBranch = "" //
)

// Review status markers.
var (
	IconReviewed   = "✓"
	IconUnreviewed = "○"
	IconPartial    = "◐"
)
