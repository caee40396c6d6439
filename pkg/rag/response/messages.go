package response

// ApologyMessage is the single terminal failure reply
const ApologyMessage = "Sorry, I'm having trouble answering right now. Please try again in a moment."
