package httpapi

import (
	"time"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
	domsearch "github.com/nearserve/nearserve/internal/domain/search"
	domsuggest "github.com/nearserve/nearserve/internal/domain/suggest"
)

// providerView is the public provider shape. Password hash and the email
// codes never appear here.
type providerView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Service       string        `json:"service"`
	Bio           string        `json:"bio,omitempty"`
	Website       string        `json:"website,omitempty"`
	Email         string        `json:"email"`
	Photos        []photoView   `json:"photos"`
	Location      *locationView `json:"location,omitempty"`
	EmailVerified bool          `json:"emailVerified"`
	IsActive      bool          `json:"isActive"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type photoView struct {
	URL        string    `json:"url"`
	ObjectKey  string    `json:"objectKey"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type locationView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func providerToView(p *domprov.Provider) providerView {
	photos := make([]photoView, 0, len(p.Photos))
	for _, ph := range p.Photos {
		photos = append(photos, photoView{
			URL:        ph.URL,
			ObjectKey:  ph.ObjectKey,
			UploadedAt: ph.UploadedAt,
		})
	}

	var loc *locationView
	if p.Location != nil {
		loc = &locationView{
			Latitude:  p.Location.Latitude,
			Longitude: p.Location.Longitude,
		}
	}

	return providerView{
		ID:            p.ID,
		Name:          p.Name,
		Phone:         p.Phone,
		Service:       p.Service,
		Bio:           p.Bio,
		Website:       p.Website,
		Email:         p.Email,
		Photos:        photos,
		Location:      loc,
		EmailVerified: p.EmailVerified,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// searchResultView is a provider annotated with its distance from the search
// origin. Distance is absent for providers without a stored location.
type searchResultView struct {
	providerView
	Distance     *float64 `json:"distance,omitempty"`
	DistanceUnit string   `json:"distanceUnit,omitempty"`
}

type searchMetaView struct {
	TotalResults   int          `json:"totalResults"`
	SearchRadius   float64      `json:"searchRadius"`
	SearchLocation locationView `json:"searchLocation"`
	SearchTerm     string       `json:"searchTerm"`
}

type searchResponseView struct {
	Success   bool               `json:"success"`
	Providers []searchResultView `json:"providers"`
	Meta      searchMetaView     `json:"meta"`
}

func searchResponseToView(resp *domsearch.Response) searchResponseView {
	providers := make([]searchResultView, 0, len(resp.Providers))
	for i := range resp.Providers {
		r := &resp.Providers[i]
		item := searchResultView{providerView: providerToView(&r.Provider)}
		if r.Distance != nil {
			item.Distance = r.Distance
			item.DistanceUnit = domsearch.DistanceUnit
		}
		providers = append(providers, item)
	}

	return searchResponseView{
		Success:   true,
		Providers: providers,
		Meta: searchMetaView{
			TotalResults: resp.Meta.TotalResults,
			SearchRadius: resp.Meta.SearchRadius,
			SearchLocation: locationView{
				Latitude:  resp.Meta.SearchOrigin.Latitude,
				Longitude: resp.Meta.SearchOrigin.Longitude,
			},
			SearchTerm: resp.Meta.SearchTerm,
		},
	}
}

type suggestionView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	ProviderCount int    `json:"providerCount"`
}

func suggestionsToView(entries []domsuggest.Entry) []suggestionView {
	out := make([]suggestionView, 0, len(entries))
	for _, e := range entries {
		out = append(out, suggestionView{
			ID:            e.ID,
			Name:          e.Name,
			Category:      e.Category,
			ProviderCount: e.ProviderCount,
		})
	}
	return out
}
