package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripchip/internal/models/request_models"
	"tripchip/internal/models/response_models"
	"tripchip/pkg/utils"
)

type fakePlannerClient struct {
	result     *utils.PlannerResult
	err        error
	lastPrompt string
}

func (f *fakePlannerClient) GeneratePlan(ctx context.Context, prompt string) (*utils.PlannerResult, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePlannerClient) Close() error { return nil }

func testPreferences() request_models.TripPreferences {
	return request_models.TripPreferences{
		Origin:           "Kathmandu",
		Destination:      "Pokhara",
		Duration:         "3 days",
		Budget:           "budget",
		GroupSize:        "2 people",
		Interests:        []string{"lakes", "hiking"},
		TravelStyle:      "relaxed",
		OtherDetails:     "vegetarian food",
		EmergencyContact: "+977-9800000000",
	}
}

func pokharaFixture() response_models.TravelItinerary {
	return response_models.TravelItinerary{
		Overview:              "Three budget days around Pokhara's lakeside.",
		Highlights:            []string{"Phewa Lake", "Sarangkot sunrise"},
		TotalEstimatedCostNPR: "Rs. 21,500",
		PermitsAndLogistics:   []string{"No permits needed for Pokhara itself."},
		Itinerary: []response_models.ItineraryDay{
			{
				Day: 1, Title: "Kathmandu to Pokhara", EstimatedCostNPR: "Rs. 3,200",
				Activities: []response_models.Activity{
					{Time: "07:00", Description: "Tourist bus along the Prithvi Highway", Location: "Kathmandu", Type: "travel"},
					{Time: "19:00", Description: "Thakali dinner", Location: "Lakeside", Type: "dining"},
				},
			},
			{
				Day: 2, Title: "Lake and viewpoints", EstimatedCostNPR: "Rs. 2,800",
				Activities: []response_models.Activity{
					{Time: "06:00", Description: "Boat across Phewa Lake", Location: "Phewa Lake", Type: "activity"},
					{Time: "10:00", Description: "World Peace Pagoda walk", Location: "Anadu Hill", Type: "sightseeing"},
				},
			},
			{
				Day: 3, Title: "Sarangkot and departure", EstimatedCostNPR: "Rs. 4,100",
				Activities: []response_models.Activity{
					{Time: "05:00", Description: "Sunrise over the Annapurnas", Location: "Sarangkot", Type: "sightseeing"},
					{Time: "13:00", Description: "Bus back to Kathmandu", Location: "Pokhara", Type: "travel"},
				},
			},
		},
		Accommodations: []response_models.Accommodation{
			{Name: "Hotel Middle Path", PriceNPR: "Rs. 2,000", Category: "budget", Description: "Quiet garden off Lakeside."},
			{Name: "Butterfly Lodge", PriceNPR: "Rs. 1,800", Category: "budget", Description: "Backpacker favourite."},
			{Name: "Hotel Orchid", PriceNPR: "Rs. 2,400", Category: "budget", Description: "Close to the bus park."},
		},
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateItineraryParsesFencedResponse(t *testing.T) {
	fixture := pokharaFixture()
	client := &fakePlannerClient{result: &utils.PlannerResult{
		Text: "Here is your plan:\n```json\n" + mustJSON(t, fixture) + "\n```",
		Sources: []utils.PlannerSource{
			{Title: "ntb.gov.np", URI: "https://ntb.gov.np/permits"},
		},
	}}
	svc := NewPlannerService(client)

	it, err := svc.GenerateItinerary(context.Background(), testPreferences())
	require.NoError(t, err)

	assert.Equal(t, fixture.Overview, it.Overview)
	assert.Len(t, it.Itinerary, 3)
	assert.Len(t, it.Accommodations, 3)
	require.Len(t, it.GroundingSources, 1)
	assert.Equal(t, "https://ntb.gov.np/permits", it.GroundingSources[0].URI)
}

func TestGenerateItineraryPromptCarriesPreferences(t *testing.T) {
	client := &fakePlannerClient{result: &utils.PlannerResult{Text: mustJSON(t, pokharaFixture())}}
	svc := NewPlannerService(client)

	_, err := svc.GenerateItinerary(context.Background(), testPreferences())
	require.NoError(t, err)

	for _, want := range []string{
		"Kathmandu", "Pokhara", "3 days", "budget", "2 people",
		"lakes, hiking", "relaxed", "vegetarian food",
		"Rs. 2,500 - Rs. 4,500", "Rs. 6,000 - Rs. 12,000", "Rs. 20,000+",
		"exactly 3 structured accommodation",
		"practicalityNote",
		"totalEstimatedCostNPR",
	} {
		assert.Contains(t, client.lastPrompt, want)
	}
}

func TestGenerateItineraryDayOrderingInvariant(t *testing.T) {
	client := &fakePlannerClient{result: &utils.PlannerResult{Text: mustJSON(t, pokharaFixture())}}
	svc := NewPlannerService(client)

	it, err := svc.GenerateItinerary(context.Background(), testPreferences())
	require.NoError(t, err)

	for i, day := range it.Itinerary {
		assert.Equal(t, i+1, day.Day)
	}
}

var nprAmount = regexp.MustCompile(`[\d,]+`)

func parseNPR(t *testing.T, s string) int {
	t.Helper()
	m := nprAmount.FindString(s)
	require.NotEmpty(t, m, "no amount in %q", s)
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	require.NoError(t, err)
	return n
}

func TestGenerateItineraryBudgetTierFixtureWithinBand(t *testing.T) {
	client := &fakePlannerClient{result: &utils.PlannerResult{Text: mustJSON(t, pokharaFixture())}}
	svc := NewPlannerService(client)

	it, err := svc.GenerateItinerary(context.Background(), testPreferences())
	require.NoError(t, err)

	// Soft bound from the prompt contract: budget tier days land in the
	// Rs. 2,500-4,500 band. Verified against the fixture, not enforced by
	// the generator itself.
	for _, day := range it.Itinerary {
		cost := parseNPR(t, day.EstimatedCostNPR)
		assert.GreaterOrEqual(t, cost, 2500, "day %d", day.Day)
		assert.LessOrEqual(t, cost, 4500, "day %d", day.Day)
	}
}

func TestGenerateItineraryUpperMustangPracticalityNote(t *testing.T) {
	// 3 days is an unrealistic duration for Upper Mustang; the model is
	// expected to flag it and may expand the plan beyond the request.
	fixture := pokharaFixture()
	fixture.Overview = "A compressed Upper Mustang run, stretched to a workable length."
	fixture.PracticalityNote = "Upper Mustang cannot be done in 3 days; 7-10 days including the drive to Jomsom is realistic. The itinerary below covers 5 days as an absolute minimum."
	fixture.Itinerary = append(fixture.Itinerary,
		response_models.ItineraryDay{
			Day: 4, Title: "Jomsom to Lo Manthang", EstimatedCostNPR: "Rs. 9,500",
			Activities: []response_models.Activity{
				{Time: "08:00", Description: "Shared jeep up the Kali Gandaki valley", Location: "Jomsom", Type: "travel"},
			},
		},
		response_models.ItineraryDay{
			Day: 5, Title: "Lo Manthang walled city", EstimatedCostNPR: "Rs. 8,000",
			Activities: []response_models.Activity{
				{Time: "09:00", Description: "Royal palace and monasteries", Location: "Lo Manthang", Type: "sightseeing"},
			},
		},
	)

	client := &fakePlannerClient{result: &utils.PlannerResult{Text: mustJSON(t, fixture)}}
	svc := NewPlannerService(client)

	prefs := testPreferences()
	prefs.Destination = "Upper Mustang"
	prefs.Budget = "moderate"

	it, err := svc.GenerateItinerary(context.Background(), prefs)
	require.NoError(t, err)

	assert.NotEmpty(t, it.PracticalityNote)
	assert.Greater(t, len(it.Itinerary), 3)
}

func TestGenerateItineraryFailures(t *testing.T) {
	cases := []struct {
		name    string
		client  *fakePlannerClient
		wantErr error
	}{
		{
			name:    "upstream error",
			client:  &fakePlannerClient{err: errors.New("rate limited")},
			wantErr: utils.ErrGenerationFailed,
		},
		{
			name:    "no JSON in response",
			client:  &fakePlannerClient{result: &utils.PlannerResult{Text: "I'm sorry, I can't plan that."}},
			wantErr: utils.ErrGenerationFailed,
		},
		{
			name:    "malformed JSON",
			client:  &fakePlannerClient{result: &utils.PlannerResult{Text: `{"overview": "oops",`}},
			wantErr: utils.ErrGenerationFailed,
		},
		{
			name: "schema violation",
			client: func() *fakePlannerClient {
				broken := pokharaFixture()
				broken.Accommodations = broken.Accommodations[:1]
				return &fakePlannerClient{result: &utils.PlannerResult{Text: fmt.Sprintf("```json\n%s\n```", mustMarshal(broken))}}
			}(),
			wantErr: utils.ErrSchemaViolation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewPlannerService(tc.client)
			it, err := svc.GenerateItinerary(context.Background(), testPreferences())
			assert.Nil(t, it, "no partial itinerary on failure")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func mustMarshal(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func TestGenerateItineraryRejectsInvalidPreferences(t *testing.T) {
	client := &fakePlannerClient{result: &utils.PlannerResult{Text: mustJSON(t, pokharaFixture())}}
	svc := NewPlannerService(client)

	prefs := testPreferences()
	prefs.Destination = ""

	_, err := svc.GenerateItinerary(context.Background(), prefs)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	assert.Empty(t, client.lastPrompt, "no AI call for invalid preferences")
}

func TestRefineDayPreservesDayNumberAndParent(t *testing.T) {
	refined := response_models.ItineraryDay{
		Day: 2, Title: "Rainy day in Pokhara", EstimatedCostNPR: "Rs. 3,000",
		Activities: []response_models.Activity{
			{Time: "10:00", Description: "International Mountain Museum", Location: "Pokhara", Type: "sightseeing"},
			{Time: "13:00", Description: "Long lunch out of the rain", Location: "Lakeside", Type: "dining"},
		},
	}
	client := &fakePlannerClient{result: &utils.PlannerResult{Text: mustMarshal(refined)}}
	svc := NewPlannerService(client)

	parent := pokharaFixture()
	before := mustMarshal(parent)

	day, err := svc.RefineDay(context.Background(), parent, 2, "it's raining")
	require.NoError(t, err)

	assert.Equal(t, 2, day.Day)
	assert.Equal(t, "Rainy day in Pokhara", day.Title)
	assert.Contains(t, client.lastPrompt, "it's raining")
	assert.Contains(t, client.lastPrompt, "Lake and viewpoints", "prompt embeds the current day")
	assert.Equal(t, before, mustMarshal(parent), "parent itinerary untouched")
}

func TestRefineDayRejectsDayNumberDrift(t *testing.T) {
	refined := response_models.ItineraryDay{
		Day: 3, Title: "Wrong day", EstimatedCostNPR: "Rs. 3,000",
		Activities: []response_models.Activity{
			{Time: "10:00", Description: "Museum", Location: "Pokhara", Type: "sightseeing"},
		},
	}
	client := &fakePlannerClient{result: &utils.PlannerResult{Text: mustMarshal(refined)}}
	svc := NewPlannerService(client)

	_, err := svc.RefineDay(context.Background(), pokharaFixture(), 2, "it's raining")
	assert.ErrorIs(t, err, utils.ErrSchemaViolation)
}

func TestRefineDayUnknownDay(t *testing.T) {
	client := &fakePlannerClient{}
	svc := NewPlannerService(client)

	_, err := svc.RefineDay(context.Background(), pokharaFixture(), 9, "it's raining")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	assert.Empty(t, client.lastPrompt)
}

func TestRefineDayRequiresInstruction(t *testing.T) {
	svc := NewPlannerService(&fakePlannerClient{})

	_, err := svc.RefineDay(context.Background(), pokharaFixture(), 2, "  ")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
