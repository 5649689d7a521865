package http

import (
	"net/http"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

// withBasicAuth rejects requests whose basic credentials do not match the
// configured password file with HTTP 401.
func (h *Handler) withBasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		user, password, ok := r.BasicAuth()
		if !ok {
			log.Warn().Msg("missing basic auth credentials")
			h.unauthorized(w, r, `Basic realm="acmecse"`, "missing basic auth credentials")
			return
		}
		if err := h.basicAuth.Verify(user, password); err != nil {
			log.Warn().Str("user", user).Err(err).Send()
			h.unauthorized(w, r, `Basic realm="acmecse"`, err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withTokenAuth requires a bearer JWT issued for the originator. The admin
// originator may act on behalf of any originator; everyone else must send an
// X-M2M-Origin equal to the token subject, or none at all.
func (h *Handler) withTokenAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			h.unauthorized(w, r, "Bearer", ErrEmptyAuthorizationHeader.Error())
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			h.unauthorized(w, r, "Bearer", err.Error())
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.tokenKey, h.tokenIssuer)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			h.unauthorized(w, r, "Bearer", http.StatusText(http.StatusUnauthorized))
			return
		}

		origin := r.Header.Get(models.HeaderOrigin)
		if origin != "" && origin != token.Originator && token.Originator != h.admin {
			log.Warn().Str("origin", origin).Str("subject", token.Originator).Msg(ErrOriginatorMismatch.Error())
			h.writeError(w, r.Header.Get(models.HeaderRequestID), ErrOriginatorMismatch)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithOriginator(r.Context(), token.Originator)))
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, challenge, message string) {
	w.Header().Set("WWW-Authenticate", challenge)
	h.setHeaders(w, models.RSCOriginatorHasNoPrivilege, r.Header.Get(models.HeaderRequestID))
	if _, err := utils.WriteJSON(w, models.DebugInfo{Message: message}, http.StatusUnauthorized); err != nil {
		h.logger.Err(err).Msg("error writing unauthorized response")
	}
}
