// Package guide generates day-by-day travel itineraries from an embedded
// city knowledge base, and serves the static travel guide documents exposed
// as MCP resources.
package guide

import "sort"

// Activity is one attraction or bookable experience.
type Activity struct {
	Name     string
	Type     string
	Duration string
	Cost     string
}

// Restaurant is one dining option with a $..$$$$ price band.
type Restaurant struct {
	Name    string
	Cuisine string
	Price   string
	Note    string
}

// City bundles everything the planner knows about one destination.
type City struct {
	Attractions []Activity
	Restaurants []Restaurant
	Activities  []Activity

	Transportation map[string]string
	BestTime       string
	PackingTips    []string
	LocalTips      []string
	DailyTips      []string
}

var cities = map[string]City{
	"Austin": {
		Attractions: []Activity{
			{"Texas State Capitol", "culture", "2-3 hours", "Free"},
			{"Lady Bird Lake", "nature", "Half day", "Free"},
			{"South Congress Bridge Bats", "nature", "1 hour", "Free"},
			{"Zilker Park", "nature", "Half day", "Free"},
			{"Blanton Museum of Art", "culture", "2-3 hours", "$12"},
			{"Bullock Texas State History Museum", "culture", "3-4 hours", "$15"},
			{"Austin City Limits Music Festival", "nightlife", "Full day", "$100+"},
			{"South Congress Shopping", "shopping", "3-4 hours", "Varies"},
			{"Barton Springs Pool", "nature", "2-3 hours", "$5"},
			{"6th Street Entertainment District", "nightlife", "Evening", "Varies"},
		},
		Restaurants: []Restaurant{
			{"Franklin Barbecue", "BBQ", "$$", "Famous BBQ, expect long lines"},
			{"Uchi", "Japanese", "$$$", "Upscale sushi restaurant"},
			{"Torchy's Tacos", "Mexican", "$", "Local taco chain"},
			{"The Salt Lick", "BBQ", "$$", "Hill Country BBQ"},
			{"Amy's Ice Cream", "Dessert", "$", "Local ice cream shop"},
			{"Paperboy", "Breakfast", "$$", "Popular breakfast spot"},
			{"Veracruz All Natural", "Mexican", "$", "Fresh Mexican food"},
			{"Home Slice Pizza", "Italian", "$$", "NY-style pizza"},
		},
		Activities: []Activity{
			{"Kayaking on Lady Bird Lake", "nature", "2-3 hours", "$30-50"},
			{"Food truck tours", "food", "3-4 hours", "$40-60"},
			{"Live music at The Continental Club", "nightlife", "Evening", "$10-20"},
			{"Hiking at Mount Bonnell", "nature", "1-2 hours", "Free"},
			{"Shopping at The Domain", "shopping", "Half day", "Varies"},
		},
		Transportation: map[string]string{
			"primary":     "Car/Rideshare",
			"alternative": "Capital Metro Bus",
			"note":        "Car recommended for attractions outside downtown",
		},
		BestTime:    "March-May and September-November (avoid summer heat)",
		PackingTips: []string{"Light, breathable clothing", "Comfortable walking shoes", "Sunscreen and hat"},
		LocalTips:   []string{"Food trucks are a local institution", "Music is everywhere - embrace it", "Traffic can be heavy during rush hour"},
		DailyTips:   []string{"Keep Austin Weird!", "Music venues often have cover charges"},
	},
	"San Francisco": {
		Attractions: []Activity{
			{"Golden Gate Bridge", "nature", "2-3 hours", "Free"},
			{"Alcatraz Island", "culture", "Half day", "$45"},
			{"Fisherman's Wharf", "culture", "3-4 hours", "Free"},
			{"Lombard Street", "culture", "1 hour", "Free"},
			{"Golden Gate Park", "nature", "Half day", "Free"},
			{"Chinatown", "culture", "2-3 hours", "Free"},
			{"Mission District Murals", "culture", "2-3 hours", "Free"},
			{"Cable Car rides", "culture", "1-2 hours", "$8"},
			{"Coit Tower", "culture", "1-2 hours", "$10"},
			{"Palace of Fine Arts", "culture", "1-2 hours", "Free"},
		},
		Restaurants: []Restaurant{
			{"Ghirardelli Ice Cream", "Dessert", "$$", "Famous chocolate and ice cream"},
			{"Swan Oyster Depot", "Seafood", "$$$", "Historic seafood counter"},
			{"Mission Chinese Food", "Chinese", "$$", "Modern Chinese cuisine"},
			{"Tartine Bakery", "Bakery", "$$", "Artisanal bakery"},
			{"In-N-Out Burger", "American", "$", "California burger chain"},
			{"Boudin Bakery", "Bakery", "$$", "Famous sourdough bread"},
			{"La Taquería", "Mexican", "$", "Authentic Mission burritos"},
		},
		Activities: []Activity{
			{"Wine tasting in Napa Valley", "food", "Full day", "$100-200"},
			{"Bike ride across Golden Gate Bridge", "nature", "Half day", "$40-60"},
			{"Food tour in Chinatown", "food", "3-4 hours", "$60-80"},
			{"Shopping at Union Square", "shopping", "Half day", "Varies"},
			{"Sunset at Baker Beach", "nature", "2 hours", "Free"},
		},
		Transportation: map[string]string{
			"primary":     "Public Transit",
			"alternative": "Walking + Muni",
			"note":        "Excellent public transportation system",
		},
		BestTime:    "September-November (warmest and clearest weather)",
		PackingTips: []string{"Layered clothing", "Light jacket", "Comfortable walking shoes"},
		LocalTips:   []string{"Steep hills everywhere - wear good shoes", "Foggy afternoons are common", "Neighborhoods have distinct personalities"},
		DailyTips:   []string{"Bring layers - weather changes quickly", "Book Alcatraz tickets in advance"},
	},
	"New York": {
		Attractions: []Activity{
			{"Central Park", "nature", "Half day", "Free"},
			{"Statue of Liberty", "culture", "Half day", "$25"},
			{"Times Square", "culture", "2-3 hours", "Free"},
			{"9/11 Memorial", "culture", "2-3 hours", "$26"},
			{"Brooklyn Bridge", "culture", "1-2 hours", "Free"},
			{"High Line", "nature", "2-3 hours", "Free"},
			{"Empire State Building", "culture", "2-3 hours", "$42"},
			{"Metropolitan Museum of Art", "culture", "Half day", "$30"},
			{"Broadway Show", "nightlife", "3 hours", "$80-300"},
			{"Little Italy", "culture", "2-3 hours", "Free"},
		},
		Restaurants: []Restaurant{
			{"Katz's Delicatessen", "Deli", "$$", "Famous pastrami sandwiches"},
			{"Peter Luger Steak House", "Steakhouse", "$$$$", "Historic Brooklyn steakhouse"},
			{"Di Fara Pizza", "Pizza", "$$", "Artisanal Brooklyn pizza"},
			{"Russ & Daughters", "Jewish", "$$", "Traditional appetizing shop"},
			{"Joe's Pizza", "Pizza", "$", "Classic NY pizza slice"},
			{"Levain Bakery", "Bakery", "$", "Famous cookies"},
			{"Xi'an Famous Foods", "Chinese", "$", "Hand-pulled noodles"},
		},
		Activities: []Activity{
			{"Food tour in Greenwich Village", "food", "3-4 hours", "$70-90"},
			{"Shopping in SoHo", "shopping", "Half day", "Varies"},
			{"Jazz at Blue Note", "nightlife", "Evening", "$30-50"},
			{"Ferry to Staten Island", "nature", "2-3 hours", "Free"},
			{"Rooftop bars in Manhattan", "nightlife", "Evening", "$15-25/drink"},
		},
		Transportation: map[string]string{
			"primary":     "Subway",
			"alternative": "Walking + Taxi",
			"note":        "Subway is fastest for long distances",
		},
		BestTime:    "April-June and September-November (mild weather)",
		PackingTips: []string{"Comfortable walking shoes", "Weather-appropriate clothing", "Small day bag"},
		LocalTips:   []string{"Walk fast and stay right", "Street food is safe and delicious", "Each borough has its own character"},
		DailyTips:   []string{"Subway is fastest but walking shows you more", "Tipping is expected"},
	},
	"Miami": {
		Attractions: []Activity{
			{"South Beach", "nature", "Half day", "Free"},
			{"Art Deco Historic District", "culture", "2-3 hours", "Free"},
			{"Vizcaya Museum & Gardens", "culture", "3-4 hours", "$22"},
			{"Wynwood Walls", "culture", "2-3 hours", "Free"},
			{"Little Havana", "culture", "3-4 hours", "Free"},
			{"Bayside Marketplace", "shopping", "2-3 hours", "Free"},
			{"Miami Beach Boardwalk", "nature", "1-2 hours", "Free"},
			{"Pérez Art Museum Miami", "culture", "2-3 hours", "$16"},
		},
		Restaurants: []Restaurant{
			{"Joe's Stone Crab", "Seafood", "$$$", "Iconic Miami seafood"},
			{"Versailles Restaurant", "Cuban", "$$", "Famous Cuban restaurant"},
			{"Yardbird Southern Table", "Southern", "$$", "Modern Southern cuisine"},
			{"Puerto Sagua", "Cuban", "$", "Authentic Cuban diner"},
			{"The Bazaar by José Andrés", "Spanish", "$$$$", "Upscale Spanish tapas"},
		},
		Activities: []Activity{
			{"Art Basel Miami Beach", "culture", "Full day", "$50+"},
			{"Boat tour of Biscayne Bay", "nature", "2-3 hours", "$40-60"},
			{"Salsa dancing in Little Havana", "nightlife", "Evening", "$20-30"},
			{"Shopping at Lincoln Road", "shopping", "Half day", "Varies"},
		},
		Transportation: map[string]string{
			"primary":     "Car/Rideshare",
			"alternative": "Metrobus",
			"note":        "Car recommended for beach areas",
		},
		BestTime:    "December-April (dry season, less humid)",
		PackingTips: []string{"Swimwear", "Light clothing", "Sunscreen", "Sandals and comfortable shoes"},
		LocalTips:   []string{"Spanish is widely spoken", "Beach culture is relaxed", "Art scene is world-class"},
		DailyTips:   []string{"UV protection essential", "Many attractions close early on Sundays"},
	},
}

// Cities lists the destinations the planner knows, in stable order.
func Cities() []string {
	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
