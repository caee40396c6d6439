package chatclient

// Error indicator texts, by language
var transportErrorMessages = map[string]string{
	"en": "Something went wrong. Please check your connection and try again.",
	"es": "Algo salió mal. Comprueba tu conexión e inténtalo de nuevo.",
	"fr": "Une erreur s'est produite. Vérifiez votre connexion et réessayez.",
}

// TransportErrorMessage returns the localized error indicator, English by default
func TransportErrorMessage(lang string) string {
	if msg, ok := transportErrorMessages[lang]; ok {
		return msg
	}
	return transportErrorMessages["en"]
}
