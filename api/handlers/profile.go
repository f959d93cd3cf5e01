// ABOUTME: Curator profile handler for /user/{namespace} and /u/{namespace}
// ABOUTME: Injects Person JSON-LD and profile metadata, or serves the flat JSON document

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/copus-io/copus-edge/core/domain"
	"github.com/copus-io/copus-edge/core/policy"
	"github.com/copus-io/copus-edge/core/rewrite"
	"github.com/copus-io/copus-edge/core/seo"
	"github.com/copus-io/copus-edge/pkg/featureflags"
)

const profileCollectionPageSize = 20

// Profile serves the curator profile routes.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	namespace := chi.URLParam(r, "namespace")
	if isAssetPath(namespace) {
		h.Passthrough(w, r)
		return
	}

	env := h.env(r)

	if wantsJSON(r) {
		h.profileJSON(w, r, namespace)
		return
	}

	profile, spaces, err := h.profileWithSpaces(r, namespace)

	tr := rewrite.NewTransformer()
	rewrite.TagRemover{}.Register(tr)

	if err != nil {
		h.deps.Logger.Warn("profile fetch failed, serving page without metadata", map[string]interface{}{
			"namespace": namespace,
			"error":     err.Error(),
		})
		rewrite.HeadInjector{NoData: true}.Register(tr)
		h.serveRewritten(w, r, r.URL.Path, tr)
		return
	}

	site := seo.Site{Base: env.SiteBase}
	rewrite.HeadInjector{
		Bundle:    profileBundle(profile),
		Canonical: site.ProfileURL(namespace),
		OGType:    "profile",
	}.Register(tr)
	rewrite.BodyInjector{
		Schemas: seo.PersonSchemas(profile, spaces, site),
	}.Register(tr)

	if h.flags.IsEnabled(featureflags.BotPrerender) && h.bots.IsBot(r.UserAgent()) {
		h.servePrerendered(w, tr)
		return
	}

	h.serveRewritten(w, r, r.URL.Path, tr)
}

func (h *Handler) profileJSON(w http.ResponseWriter, r *http.Request, namespace string) {
	env := h.env(r)

	profile, spaces, err := h.profileWithSpaces(r, namespace)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassEntityJSON))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, seo.PersonDocument(profile, spaces, seo.Site{Base: env.SiteBase}))
}

// profileWithSpaces fetches the profile and, best-effort, its
// collections. A collections failure degrades to none.
func (h *Handler) profileWithSpaces(r *http.Request, namespace string) (*domain.UserProfile, []domain.Space, error) {
	env := h.env(r)

	profile, err := h.fetcher.ProfileByNamespace(r.Context(), env.ContentAPIBase, namespace)
	if err != nil {
		return nil, nil, err
	}

	spaces, err := h.fetcher.CollectionsByUserID(r.Context(), env.ContentAPIBase, profile.ID, 1, profileCollectionPageSize)
	if err != nil {
		h.deps.Logger.Warn("profile collections fetch failed", map[string]interface{}{
			"namespace": namespace,
			"error":     err.Error(),
		})
		spaces = nil
	}

	return profile, spaces, nil
}

// profileBundle derives page metadata from a curator profile.
func profileBundle(profile *domain.UserProfile) seo.Bundle {
	name := profile.DisplayName()

	description := strings.TrimSpace(profile.Bio)
	if description == "" {
		description = name + " curates and shares content on " + seo.SiteName + "."
	}

	return seo.Bundle{
		Title:       name + " | " + seo.SiteName,
		Description: description,
		Image:       profile.FaceURL,
		SchemaType:  "ProfilePage",
		Author:      name,
	}
}
