package guide

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/petal-labs/tripflow"
)

const (
	minDays = 1
	maxDays = 7

	// dailyTransportCost is the flat per-day transport estimate in dollars.
	dailyTransportCost = 25
)

var defaultInterests = []string{"culture", "food", "nature"}

// mealCosts maps a restaurant price band to an estimated per-meal spend.
var mealCosts = map[string]int{"$": 15, "$$": 35, "$$$": 65, "$$$$": 120}

// ServiceConfig configures the itinerary generator.
type ServiceConfig struct {
	Logger *slog.Logger
	// Now anchors the itinerary's calendar dates; defaults to time.Now.
	Now func() time.Time
}

// Service generates itineraries from the embedded city knowledge base.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates an itinerary generator.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{logger: logger, now: now}
}

// Generate implements the itinerary operation. Plans for the same city,
// duration and interests come out identical run to run.
func (s *Service) Generate(ctx context.Context, p tripflow.ItineraryParams) tripflow.Result {
	city, ok := cities[p.City]
	if !ok {
		return tripflow.Failuref("Itinerary generation not available for: %s. Available cities: %s",
			p.City, strings.Join(Cities(), ", "))
	}
	if p.Days < minDays || p.Days > maxDays {
		return tripflow.Failuref("Itinerary generation supports %d-%d days", minDays, maxDays)
	}

	interests := p.Interests
	if len(interests) == 0 {
		interests = defaultInterests
	}

	rng := rand.New(rand.NewSource(planSeed(p.City, p.Days, interests)))

	attractions := filterActivities(city.Attractions, interests)
	activities := filterActivities(city.Activities, interests)

	itinerary := make(map[string]any, p.Days)
	dailyPlans := make([]dayPlan, 0, p.Days)
	start := s.now()

	for day := 1; day <= p.Days; day++ {
		plan := buildDayPlan(rng, city, day, start, interests, &attractions, &activities)
		itinerary[fmt.Sprintf("day%d", day)] = plan.render()
		dailyPlans = append(dailyPlans, plan)
	}

	return tripflow.Success(map[string]any{
		"summary":   tripSummary(p.City, city, p.Days, interests, dailyPlans),
		"itinerary": itinerary,
		"note":      "This is a generated itinerary. Times and availability may vary. Always confirm hours and reservations.",
	}, "Tripflow City Guides")
}

func planSeed(city string, days int, interests []string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%s", city, days, strings.Join(interests, ","))
	return int64(h.Sum64())
}

func filterActivities(items []Activity, interests []string) []Activity {
	out := make([]Activity, 0, len(items))
	for _, item := range items {
		if slices.Contains(interests, item.Type) {
			out = append(out, item)
		}
	}
	return out
}

type dayPlan struct {
	day       int
	date      string
	morning   []map[string]any
	afternoon []map[string]any
	evening   []map[string]any
	budget    budget
	transport map[string]string
	tips      []string
}

func (p dayPlan) render() map[string]any {
	return map[string]any{
		"day":            p.day,
		"date":           p.date,
		"morning":        p.morning,
		"afternoon":      p.afternoon,
		"evening":        p.evening,
		"dailyBudget":    p.budget.render(),
		"transportation": p.transport,
		"tips":           p.tips,
	}
}

func buildDayPlan(rng *rand.Rand, city City, day int, start time.Time, interests []string, attractions, activities *[]Activity) dayPlan {
	plan := dayPlan{
		day:       day,
		date:      start.AddDate(0, 0, day-1).Format(tripflow.DateLayout),
		transport: city.Transportation,
		tips:      dailyTips(city, day, interests),
	}

	// Morning: breakfast plus one attraction.
	breakfast := pickRestaurant(rng, city.Restaurants, "Breakfast", "Bakery", "American")
	plan.morning = append(plan.morning, mealEntry("8:00 AM", "Breakfast", breakfast))
	if item, ok := takeActivity(rng, attractions); ok {
		plan.morning = append(plan.morning, activityEntry("9:00 AM", item, "Visit"))
	}

	// Afternoon: casual lunch plus an activity, falling back to another
	// attraction when the interest filter exhausted the activity pool.
	if lunch, ok := pickByPrice(rng, city.Restaurants, "$", "$$"); ok {
		plan.afternoon = append(plan.afternoon, mealEntry("1:00 PM", "Lunch", lunch))
	}
	if item, ok := takeActivity(rng, activities); ok {
		plan.afternoon = append(plan.afternoon, activityEntry("3:00 PM", item, "Experience"))
	} else if item, ok := takeActivity(rng, attractions); ok {
		plan.afternoon = append(plan.afternoon, activityEntry("3:00 PM", item, "Explore"))
	}

	// Evening: dinner, plus nightlife when asked for.
	if dinner, ok := pickByPrice(rng, city.Restaurants, "$$", "$$$", "$$$$"); ok {
		plan.evening = append(plan.evening, mealEntry("7:00 PM", "Dinner", dinner))
	}
	if slices.Contains(interests, "nightlife") {
		if spot, ok := pickNightlife(rng, city); ok {
			plan.evening = append(plan.evening, activityEntry("9:00 PM", spot, "Enjoy"))
		}
	}

	plan.budget = estimateBudget(slices.Concat(plan.morning, plan.afternoon, plan.evening))
	return plan
}

func mealEntry(at, meal string, r Restaurant) map[string]any {
	return map[string]any{
		"time":     at,
		"activity": fmt.Sprintf("%s at %s", meal, r.Name),
		"type":     "food",
		"cuisine":  r.Cuisine,
		"price":    r.Price,
		"note":     r.Note,
	}
}

func activityEntry(at string, item Activity, verb string) map[string]any {
	return map[string]any{
		"time":        at,
		"activity":    item.Name,
		"type":        item.Type,
		"duration":    item.Duration,
		"cost":        item.Cost,
		"description": fmt.Sprintf("%s %s", verb, item.Name),
	}
}

// takeActivity removes and returns a random element so no day repeats it.
func takeActivity(rng *rand.Rand, pool *[]Activity) (Activity, bool) {
	items := *pool
	if len(items) == 0 {
		return Activity{}, false
	}
	i := rng.Intn(len(items))
	item := items[i]
	*pool = append(items[:i], items[i+1:]...)
	return item, true
}

func pickRestaurant(rng *rand.Rand, restaurants []Restaurant, cuisines ...string) Restaurant {
	matching := make([]Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if slices.Contains(cuisines, r.Cuisine) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		matching = restaurants[:min(3, len(restaurants))]
	}
	return matching[rng.Intn(len(matching))]
}

func pickByPrice(rng *rand.Rand, restaurants []Restaurant, prices ...string) (Restaurant, bool) {
	matching := make([]Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if slices.Contains(prices, r.Price) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		return Restaurant{}, false
	}
	return matching[rng.Intn(len(matching))], true
}

func pickNightlife(rng *rand.Rand, city City) (Activity, bool) {
	options := make([]Activity, 0)
	for _, item := range slices.Concat(city.Attractions, city.Activities) {
		if item.Type == "nightlife" {
			options = append(options, item)
		}
	}
	if len(options) == 0 {
		return Activity{}, false
	}
	return options[rng.Intn(len(options))], true
}

type budget struct {
	food, attractions, activities, transport int
}

func (b budget) total() int {
	return b.food + b.attractions + b.activities + b.transport
}

func (b budget) render() map[string]any {
	return map[string]any{
		"food":           b.food,
		"attractions":    b.attractions,
		"activities":     b.activities,
		"transportation": b.transport,
		"total":          b.total(),
	}
}

var costNumber = regexp.MustCompile(`\d+`)

// estimateBudget prices a day's entries: meals by price band, everything
// else by the first number in its cost string. Nature entries count as
// activities, the rest as attractions.
func estimateBudget(entries []map[string]any) budget {
	b := budget{transport: dailyTransportCost}
	for _, entry := range entries {
		if entry["type"] == "food" {
			price, _ := entry["price"].(string)
			cost, ok := mealCosts[price]
			if !ok {
				cost = mealCosts["$$"]
			}
			b.food += cost
			continue
		}
		cost, _ := entry["cost"].(string)
		if cost == "Free" || !strings.Contains(cost, "$") {
			continue
		}
		match := costNumber.FindString(cost)
		if match == "" {
			continue
		}
		amount, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if entry["type"] == "nature" {
			b.activities += amount
		} else {
			b.attractions += amount
		}
	}
	return b
}

func dailyTips(city City, day int, interests []string) []string {
	var tips []string
	if day == 1 {
		tips = append(tips, "Start with major attractions to get oriented",
			"Download local transportation apps")
	}
	if slices.Contains(interests, "food") {
		tips = append(tips, "Make dinner reservations in advance")
	}
	if slices.Contains(interests, "nature") {
		tips = append(tips, "Check weather and dress appropriately")
	}
	tips = append(tips, city.DailyTips...)
	if len(tips) > 3 {
		tips = tips[:3]
	}
	return tips
}

func tripSummary(name string, city City, days int, interests []string, plans []dayPlan) map[string]any {
	var total budget
	for _, plan := range plans {
		total.food += plan.budget.food
		total.attractions += plan.budget.attractions
		total.activities += plan.budget.activities
		total.transport += plan.budget.transport
	}

	duration := fmt.Sprintf("%d day", days)
	if days > 1 {
		duration += "s"
	}

	return map[string]any{
		"destination": name,
		"duration":    duration,
		"interests":   interests,
		"totalEstimatedBudget": map[string]any{
			"perPerson": total.total(),
			"breakdown": map[string]any{
				"food":           total.food,
				"attractions":    total.attractions,
				"activities":     total.activities,
				"transportation": total.transport,
			},
		},
		"bestTimeToVisit": city.BestTime,
		"packingTips":     city.PackingTips,
		"localTips":       city.LocalTips,
	}
}
