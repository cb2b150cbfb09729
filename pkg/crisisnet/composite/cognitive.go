package composite

import (
	"sort"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/metrics"
)

// Cognitive hub roles assigned by CognitiveHubs.
const (
	RoleCognitiveInfluencer  = "cognitive_influencer"
	RoleEmotionalResonator   = "emotional_resonator"
	RoleRiskCommunicator     = "risk_communicator"
	RoleCommunityCoordinator = "community_coordinator"
)

var roleOrder = []string{
	RoleCognitiveInfluencer,
	RoleEmotionalResonator,
	RoleRiskCommunicator,
	RoleCommunityCoordinator,
}

// roleCats maps each role to the lexical categories backing it.
var roleCats = map[string][]string{
	RoleCognitiveInfluencer:  {"cogproc", "insight", "certainty", "causation"},
	RoleEmotionalResonator:   {"affect", "posemo", "negemo", "anx"},
	RoleRiskCommunicator:     {"risk", "anx", "death"},
	RoleCommunityCoordinator: {"social", "home"},
}

// CognitiveHub is one network hub classified by the language its posts
// carry. Scores holds the author's mean category sum per role
// dimension, whether or not the role was assigned.
type CognitiveHub struct {
	Author string             `json:"author"`
	Roles  []string           `json:"roles"`
	Scores map[string]float64 `json:"scores"`
}

// CognitiveHubs crosses user-network hub roles with per-author lexical
// profiles: a structural hub whose posts run high on cognitive process
// language is a cognitive influencer, an information broker high on
// risk language is a risk communicator, a core user high on social
// language is a community coordinator, and any flagged hub high on
// emotion language is an emotional resonator. "High" means strictly
// above the median author-level mean for the dimension, so a corpus
// where every author sounds alike yields no roles.
//
// Requires an enriched dataset and the hub report of the user
// interaction network (node labels are author names). Returns nil when
// either input is missing.
func CognitiveHubs(ds *dataset.Dataset, hubs *metrics.HubReport) []CognitiveHub {
	if hubs == nil || len(hubs.Flags) == 0 || len(ds.ScoreOrder) == 0 {
		return nil
	}

	profiles := authorProfiles(ds)
	if len(profiles) == 0 {
		return nil
	}

	// Median of each role dimension across every posting author, not
	// just the hubs, so thresholds reflect the whole corpus.
	medians := make(map[string]float64, len(roleOrder))
	for _, role := range roleOrder {
		values := make([]float64, 0, len(profiles))
		for _, p := range profiles {
			values = append(values, roleScore(p, role))
		}
		medians[role] = quantileOf(values, 0.5)
	}

	authors := make([]string, 0, len(hubs.Flags))
	for a := range hubs.Flags {
		authors = append(authors, a)
	}
	sort.Strings(authors)

	var out []CognitiveHub
	for _, author := range authors {
		profile, ok := profiles[author]
		if !ok {
			continue
		}
		flags := hubs.Flags[author]

		scores := make(map[string]float64, len(roleOrder))
		for _, role := range roleOrder {
			scores[role] = roleScore(profile, role)
		}

		var roles []string
		for _, role := range roleOrder {
			if scores[role] <= medians[role] {
				continue
			}
			switch role {
			case RoleCognitiveInfluencer:
				if flags.StructuralHub {
					roles = append(roles, role)
				}
			case RoleRiskCommunicator:
				if flags.InformationBroker {
					roles = append(roles, role)
				}
			case RoleCommunityCoordinator:
				if flags.CoreUser {
					roles = append(roles, role)
				}
			case RoleEmotionalResonator:
				roles = append(roles, role)
			}
		}
		if len(roles) == 0 {
			continue
		}
		out = append(out, CognitiveHub{Author: author, Roles: roles, Scores: scores})
	}
	return out
}

// authorProfiles averages each author's per-category scores across
// their posts. Deleted and anonymous authors are skipped.
func authorProfiles(ds *dataset.Dataset) map[string]map[string]float64 {
	sums := make(map[string]map[string]float64)
	counts := make(map[string]int)
	for _, p := range ds.Posts {
		if p.Author == "" || p.Author == dataset.DeletedAuthor {
			continue
		}
		if sums[p.Author] == nil {
			sums[p.Author] = make(map[string]float64, len(ds.ScoreOrder))
		}
		for _, cat := range ds.ScoreOrder {
			sums[p.Author][cat] += p.Scores[cat]
		}
		counts[p.Author]++
	}
	for author, catSums := range sums {
		n := float64(counts[author])
		for cat := range catSums {
			catSums[cat] /= n
		}
	}
	return sums
}

func roleScore(profile map[string]float64, role string) float64 {
	var sum float64
	for _, cat := range roleCats[role] {
		sum += profile[cat]
	}
	return sum
}
