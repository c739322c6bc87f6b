package tenancy

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type messageKey string

const (
	msgUnidentified         messageKey = "tenant.unidentified"
	msgTenantNotFound       messageKey = "tenant.not_found"
	msgTenantInactive       messageKey = "tenant.inactive"
	msgTenantSuspended      messageKey = "tenant.suspended"
	msgTenantCancelled      messageKey = "tenant.cancelled"
	msgTenantTrialExpired   messageKey = "tenant.trial_expired"
	msgNoSubscription       messageKey = "subscription.missing"
	msgSubscriptionInactive messageKey = "subscription.inactive"
	msgSubscriptionExpired  messageKey = "subscription.expired"
	msgOwnershipViolation   messageKey = "ownership.violation"
	msgStoreUnavailable     messageKey = "store.unavailable"
)

var translations = map[messageKey]map[language.Tag]string{
	msgUnidentified: {
		language.Spanish: "No se pudo identificar la institución. Envíe la cabecera %s o use el subdominio de la institución.",
		language.English: "Could not identify the institution. Send the %s header or use the institution subdomain.",
	},
	msgTenantNotFound: {
		language.Spanish: "La institución %q no existe.",
		language.English: "Institution %q not found.",
	},
	msgTenantInactive: {
		language.Spanish: "La institución no está activa.",
		language.English: "Institution is not active.",
	},
	msgTenantSuspended: {
		language.Spanish: "La institución no está disponible: se encuentra suspendida. Contacte a soporte.",
		language.English: "Institution suspended. Please contact support.",
	},
	msgTenantCancelled: {
		language.Spanish: "La suscripción de la institución fue cancelada.",
		language.English: "The institution's subscription was cancelled.",
	},
	msgTenantTrialExpired: {
		language.Spanish: "El periodo de prueba de la institución ha finalizado.",
		language.English: "The institution's trial period has ended.",
	},
	msgNoSubscription: {
		language.Spanish: "No se encontró una suscripción para la institución.",
		language.English: "No subscription found for the institution.",
	},
	msgSubscriptionInactive: {
		language.Spanish: "La suscripción de la institución no está activa (estado: %s).",
		language.English: "The institution's subscription is not active (status: %s).",
	},
	msgSubscriptionExpired: {
		language.Spanish: "La suscripción de la institución venció el %s.",
		language.English: "The institution's subscription expired on %s.",
	},
	msgOwnershipViolation: {
		language.Spanish: "No tiene acceso a esta institución.",
		language.English: "You do not have access to this institution.",
	},
	msgStoreUnavailable: {
		language.Spanish: "Los datos de la institución no están disponibles en este momento. Intente nuevamente.",
		language.English: "Institution data is temporarily unavailable. Please retry.",
	},
}

// Localizer renders rejection messages in the caller's language.
type Localizer struct {
	catalog catalog.Catalog
	matcher language.Matcher
	tags    []language.Tag
}

// NewLocalizer builds a localizer whose fallback is defaultLocale (es or en).
func NewLocalizer(defaultLocale string) *Localizer {
	fallback := language.Spanish
	if tag, err := language.Parse(defaultLocale); err == nil {
		if base, _ := tag.Base(); base.String() == "en" {
			fallback = language.English
		}
	}

	tags := []language.Tag{fallback}
	for _, t := range []language.Tag{language.Spanish, language.English} {
		if t != fallback {
			tags = append(tags, t)
		}
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for key, byLang := range translations {
		for tag, msg := range byLang {
			_ = b.SetString(tag, string(key), msg)
		}
	}

	return &Localizer{
		catalog: b,
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}
}

// Match picks the supported language for an Accept-Language header value.
func (l *Localizer) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return l.tags[0]
	}
	_, idx := language.MatchStrings(l.matcher, acceptLanguage)
	return l.tags[idx]
}

// Message renders r for the given Accept-Language header value.
func (l *Localizer) Message(r *Rejection, acceptLanguage string) string {
	p := message.NewPrinter(l.Match(acceptLanguage), message.Catalog(l.catalog))
	return p.Sprintf(string(r.msgKey), r.msgArgs...)
}

// Body renders the JSON payload for a rejection: error kind, localized message
// and the rejection's context fields.
func (l *Localizer) Body(r *Rejection, acceptLanguage string) map[string]any {
	body := make(map[string]any, len(r.Details)+2)
	for k, v := range r.Details {
		body[k] = v
	}
	body["error"] = string(r.Kind)
	body["message"] = l.Message(r, acceptLanguage)
	return body
}
