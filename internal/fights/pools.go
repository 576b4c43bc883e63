package fights

// Lookup tables indexed modulo their length by catalog position.

var sports = []string{"MMA", "Boxing", "MMA", "Boxing", "MMA"}

var fighterPool = []string{
	"Jones", "Silva", "McGregor", "Nurmagomedov", "Adesanya",
	"Usman", "Miocic", "Ngannou", "Holloway", "Volkanovski",
	"Canelo", "Crawford", "Usyk", "Fury", "Joshua",
	"Garcia", "Davis", "Spence", "Inoue", "Bivol",
}

var fightImages = []string{
	"https://images.unsplash.com/photo-1549719386-74dfcbf7dbed?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1517438322307-e67111335449?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1552072092-7f9b8d63efcb?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1495555961986-6d4c1ecb7be3?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1544117519-31a4a39f4f50?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1591117207239-788bf8de6c3b?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1596401057633-54a8fe8ef647?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1555597673-b21d5c935865?w=400&h=300&fit=crop",
}

var venues = []string{
	"MGM Grand, Las Vegas",
	"Madison Square Garden, New York",
	"T-Mobile Arena, Las Vegas",
	"O2 Arena, London",
	"Staples Center, Los Angeles",
	"Toyota Center, Houston",
	"TD Garden, Boston",
	"Barclays Center, Brooklyn",
}

// Fighter profile traits.
var (
	nicknames     = []string{"Champ", "Beast", "Warrior", "Legend", "King"}
	nationalities = []string{"USA", "Brazil", "Russia", "UK", "Ireland"}
	divisions     = []string{"Heavyweight", "Middleweight", "Welterweight", "Lightweight"}
	weights       = []string{"205 lbs", "185 lbs", "170 lbs", "155 lbs", "145 lbs"}
	teams         = []string{"American Top Team", "Jackson-Wink MMA", "AKA", "Tristar Gym", "City Kickboxing"}
	fighterPhotos = []string{
		"https://images.unsplash.com/photo-1594381898411-846e7d193883?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1583473848882-f9a5bc7fd2ee?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1567013275033-e0719cb29290?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1549476464-37392f717541?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1583454110551-21f2fa2afe61?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1571019614242-c5c5dee9f50b?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1534438327276-14e5300c3a48?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1517438476312-10d79c077509?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1526506118085-60ce8714f8c5?w=300&h=300&fit=crop",
		"https://images.unsplash.com/photo-1548690312-e3b507d8c110?w=300&h=300&fit=crop",
	}
)

// Completed-event tables.
var (
	pastSports    = []string{"MMA", "Boxing"}
	pastFighters  = []string{"Jones", "Silva", "McGregor", "Nurmagomedov", "Adesanya", "Canelo", "Crawford", "Usyk", "Fury", "Joshua"}
	pastImages    = fightImages[:5]
	pastMethods   = []string{"KO", "TKO", "Submission", "Decision", "Unanimous Decision"}
	pastVenues    = []string{"MGM Grand", "Madison Square Garden", "T-Mobile Arena", "O2 Arena"}
	pastLocations = []string{"Las Vegas", "New York", "Las Vegas", "London"}
)

const (
	fightTime          = "21:00"
	defaultTicketPrice = 49.99
	dateLayout         = "2006-01-02"
)
