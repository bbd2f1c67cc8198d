// Package i18n turns diagnostic message kinds into text in the viewer's
// language. The core only deals in models.MessageKind; wording lives here.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/videofront/videofront-embed-go/internal/models"
)

// DefaultLocale is used when nothing in Accept-Language is supported.
var DefaultLocale = language.English

var supported = []language.Tag{language.English, language.French}

var translations = map[language.Tag]map[models.MessageKind]string{
	language.English: {
		models.MessageInvalidVideoID:   "You need to define a valid Videofront video ID.",
		models.MessageUndefinedHost:    "Undefined Videofront hostname. Contact your platform administrator.",
		models.MessageUndefinedToken:   "Undefined Videofront auth token. Contact your platform administrator.",
		models.MessageUnreachable:      "Could not reach Videofront server. Contact your platform administrator",
		models.MessageAuthentication:   "Authentication error",
		models.MessageIncorrectVideoID: "Incorrect video id",
		models.MessageUnknownError:     "An unknown error has occurred",
		models.MessageProcessing:       "Video is currently being processed (%.2f%%)",
		models.MessageProcessingFailed: "Video processing failed: try again with a different video ID",
	},
	language.French: {
		models.MessageInvalidVideoID:   "Vous devez définir un identifiant de vidéo Videofront valide.",
		models.MessageUndefinedHost:    "Nom d'hôte Videofront non défini. Contactez l'administrateur de votre plateforme.",
		models.MessageUndefinedToken:   "Jeton d'authentification Videofront non défini. Contactez l'administrateur de votre plateforme.",
		models.MessageUnreachable:      "Impossible de joindre le serveur Videofront. Contactez l'administrateur de votre plateforme",
		models.MessageAuthentication:   "Erreur d'authentification",
		models.MessageIncorrectVideoID: "Identifiant de vidéo incorrect",
		models.MessageUnknownError:     "Une erreur inconnue s'est produite",
		models.MessageProcessing:       "La vidéo est en cours de traitement (%.2f%%)",
		models.MessageProcessingFailed: "Le traitement de la vidéo a échoué : essayez avec un autre identifiant de vidéo",
	},
}

// Translator renders messages from a fixed catalog.
type Translator struct {
	catalog catalog.Catalog
	matcher language.Matcher
}

// NewTranslator builds the message catalog.
func NewTranslator() (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLocale))
	for tag, msgs := range translations {
		for kind, text := range msgs {
			if err := b.SetString(tag, string(kind), text); err != nil {
				return nil, err
			}
		}
	}

	return &Translator{
		catalog: b,
		matcher: language.NewMatcher(supported),
	}, nil
}

// Match picks the best supported locale for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	return supported[idx]
}

// Text renders a single message.
func (t *Translator) Text(locale language.Tag, msg models.Message) string {
	p := message.NewPrinter(locale, message.Catalog(t.catalog))
	return p.Sprintf(string(msg.Kind), msg.Args...)
}

// Localize renders messages, keeping their order.
func (t *Translator) Localize(locale language.Tag, msgs []models.Message) []models.LocalizedMessage {
	out := make([]models.LocalizedMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, models.LocalizedMessage{
			Level:   m.Severity,
			Kind:    m.Kind,
			Content: t.Text(locale, m),
		})
	}
	return out
}
