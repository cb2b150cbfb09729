package composite

import (
	"reflect"
	"testing"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/metrics"
)

func hubDataset() *dataset.Dataset {
	ds := dataset.New(dataset.ColPostID, dataset.ColAuthor, dataset.ColContent)
	ds.ScoreOrder = []string{
		"cogproc", "insight", "certainty", "causation",
		"affect", "posemo", "negemo", "anx",
		"risk", "death", "social", "home",
	}
	ds.Posts = []dataset.Post{
		{ID: "p1", Author: "alice", Scores: map[string]float64{
			"cogproc": 8, "insight": 4, "risk": 6, "anx": 3,
		}},
		{ID: "p2", Author: "bob", Scores: map[string]float64{
			"social": 9, "home": 2, "posemo": 5, "affect": 4,
		}},
		{ID: "p3", Author: "carol", Scores: map[string]float64{}},
	}
	return ds
}

func TestCognitiveHubsClassification(t *testing.T) {
	hubs := &metrics.HubReport{Flags: map[string]metrics.HubFlags{
		"alice": {StructuralHub: true, InformationBroker: true},
		"bob":   {CoreUser: true},
		"carol": {StructuralHub: true},
	}}

	got := CognitiveHubs(hubDataset(), hubs)
	if len(got) != 2 {
		t.Fatalf("hubs = %+v, want alice and bob", got)
	}

	alice := got[0]
	if alice.Author != "alice" {
		t.Fatalf("first hub = %s, want alice (sorted)", alice.Author)
	}
	wantAlice := []string{RoleCognitiveInfluencer, RoleRiskCommunicator}
	if !reflect.DeepEqual(alice.Roles, wantAlice) {
		t.Errorf("alice roles = %v, want %v", alice.Roles, wantAlice)
	}
	if alice.Scores[RoleCognitiveInfluencer] != 12 {
		t.Errorf("alice cognitive dimension = %v, want 12", alice.Scores[RoleCognitiveInfluencer])
	}

	bob := got[1]
	wantBob := []string{RoleEmotionalResonator, RoleCommunityCoordinator}
	if !reflect.DeepEqual(bob.Roles, wantBob) {
		t.Errorf("bob roles = %v, want %v", bob.Roles, wantBob)
	}

	// carol is a structural hub but her language sits at the corpus
	// median on every dimension, so she holds no role.
	for _, h := range got {
		if h.Author == "carol" {
			t.Error("carol should not be classified")
		}
	}
}

func TestCognitiveHubsRequiresInputs(t *testing.T) {
	ds := hubDataset()
	if got := CognitiveHubs(ds, nil); got != nil {
		t.Errorf("nil hub report should yield nil, got %+v", got)
	}
	if got := CognitiveHubs(ds, &metrics.HubReport{}); got != nil {
		t.Errorf("empty flags should yield nil, got %+v", got)
	}

	plain := dataset.New(dataset.ColAuthor)
	plain.Posts = []dataset.Post{{Author: "alice"}}
	hubs := &metrics.HubReport{Flags: map[string]metrics.HubFlags{"alice": {StructuralHub: true}}}
	if got := CognitiveHubs(plain, hubs); got != nil {
		t.Errorf("unenriched dataset should yield nil, got %+v", got)
	}
}

func TestCognitiveHubsSkipsUnknownAuthors(t *testing.T) {
	hubs := &metrics.HubReport{Flags: map[string]metrics.HubFlags{
		"stranger": {StructuralHub: true, InformationBroker: true, CoreUser: true},
	}}
	if got := CognitiveHubs(hubDataset(), hubs); got != nil {
		t.Errorf("hub absent from the dataset should yield nothing, got %+v", got)
	}
}
