package analysis

// emojiRanges covers the common emoji blocks: emoticons, symbols and
// pictographs, transport, regional indicators, dingbats, and enclosed
// characters.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0},
	{0x24C2, 0x1F251},
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}

	return false
}

// countEmojiRuns counts maximal runs of consecutive emoji runes. A
// sticker burst like three grinning faces in a row counts once.
func countEmojiRuns(text string) int {
	runs := 0
	inRun := false

	for _, r := range text {
		if isEmoji(r) {
			if !inRun {
				runs++
				inRun = true
			}

			continue
		}

		inRun = false
	}

	return runs
}

// collectEmojis tallies each distinct emoji rune in text into counts.
func collectEmojis(text string, counts map[string]int) {
	for _, r := range text {
		if isEmoji(r) {
			counts[string(r)]++
		}
	}
}
