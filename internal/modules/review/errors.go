package review

// Message reported when a guest reviews the same booking twice.
const duplicateReviewMessage = "The fields booking, guest must make a unique set."
