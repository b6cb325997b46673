package upstream

import "strings"

// Resource describes one collection of the loyalty API: the envelope keys its
// records are wrapped in and the candidate paths it may be served from, in the
// order they are tried.
type Resource struct {
	Name     string
	Key      string
	Singular string
	Paths    []string
}

// WithPaths returns a copy of the resource served from paths
func (r Resource) WithPaths(paths ...string) Resource {
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cleaned = append(cleaned, "/"+strings.Trim(p, "/"))
	}
	if len(cleaned) > 0 {
		r.Paths = cleaned
	}
	return r
}

// Resources known to the console
var (
	Users = Resource{
		Name: "users", Key: "users", Singular: "user",
		Paths: []string{"/admin/users", "/users", "/api/users"},
	}
	Stores = Resource{
		Name: "stores", Key: "stores", Singular: "store",
		Paths: []string{"/admin/stores", "/stores", "/api/stores"},
	}
	Coupons = Resource{
		Name: "coupons", Key: "coupons", Singular: "coupon",
		Paths: []string{"/admin/coupons", "/coupons", "/api/coupons"},
	}
	Settlements = Resource{
		Name: "settlements", Key: "settlements", Singular: "settlement",
		Paths: []string{"/admin/settlements", "/settlements", "/api/settlements"},
	}
	Surveys = Resource{
		Name: "surveys", Key: "surveys", Singular: "survey",
		Paths: []string{"/admin/surveys", "/surveys", "/api/surveys"},
	}
	SurveyQuestions = Resource{
		Name: "survey-questions", Key: "questions", Singular: "question",
		Paths: []string{"/admin/survey-questions", "/survey-questions", "/surveys/questions"},
	}
	DailyRewards = Resource{
		Name: "daily-rewards", Key: "campaigns", Singular: "campaign",
		Paths: []string{"/admin/daily-rewards", "/daily-rewards", "/daily-reward-campaigns"},
	}
	Rewards = Resource{
		Name: "rewards", Key: "rewards", Singular: "reward",
		Paths: []string{"/admin/daily-rewards/rewards", "/daily-rewards/rewards", "/rewards"},
	}
	FAQs = Resource{
		Name: "faqs", Key: "faqs", Singular: "faq",
		Paths: []string{"/admin/faqs", "/faqs", "/api/faqs"},
	}
	Terms = Resource{
		Name: "terms", Key: "terms", Singular: "term",
		Paths: []string{"/admin/terms", "/terms", "/api/terms"},
	}
	Videos = Resource{
		Name: "videos", Key: "videos", Singular: "video",
		Paths: []string{"/admin/videos", "/videos", "/api/videos"},
	}
	StoreSequence = Resource{
		Name: "store-sequence", Key: "sequences", Singular: "sequence",
		Paths: []string{"/admin/store-sequence", "/store-sequence", "/top-stores"},
	}
)

// DefaultResources lists every known resource by name
func DefaultResources() map[string]Resource {
	all := []Resource{Users, Stores, Coupons, Settlements, Surveys, SurveyQuestions, DailyRewards, Rewards, FAQs, Terms, Videos, StoreSequence}
	out := make(map[string]Resource, len(all))
	for _, r := range all {
		out[r.Name] = r
	}
	return out
}

// ResolveResources returns the known resources with the candidate paths of
// some replaced, keyed by resource name. Unknown names are ignored.
func ResolveResources(overrides map[string][]string) map[string]Resource {
	all := DefaultResources()
	for name, paths := range overrides {
		if res, ok := all[name]; ok {
			all[name] = res.WithPaths(paths...)
		}
	}
	return all
}
