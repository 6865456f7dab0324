package words

// DefaultBank returns the compiled-in catalogue. Deployments can swap it
// out with WORD_BANK_FILE; see LoadFile.
func DefaultBank() *Bank {
	return &Bank{Domains: []Domain{
		{
			Name: "food",
			Words: []Entry{
				{Word: "pizza", Similar: []string{"flatbread", "calzone", "focaccia"}},
				{Word: "sushi", Similar: []string{"sashimi", "onigiri", "poke"}},
				{Word: "burger", Similar: []string{"sandwich", "slider", "wrap"}},
				{Word: "pancake", Similar: []string{"waffle", "crepe", "blini"}},
				{Word: "dumpling", Similar: []string{"wonton", "pierogi", "gyoza"}},
				{Word: "taco", Similar: []string{"burrito", "quesadilla", "tostada"}},
			},
		},
		{
			Name: "animals",
			Words: []Entry{
				{Word: "tiger", Similar: []string{"lion", "leopard", "jaguar"}},
				{Word: "dolphin", Similar: []string{"porpoise", "orca", "whale"}},
				{Word: "eagle", Similar: []string{"hawk", "falcon", "kite"}},
				{Word: "rabbit", Similar: []string{"hare", "guinea pig", "chinchilla"}},
				{Word: "penguin", Similar: []string{"puffin", "albatross", "auk"}},
				{Word: "crocodile", Similar: []string{"alligator", "caiman", "monitor lizard"}},
			},
		},
		{
			Name: "places",
			Words: []Entry{
				{Word: "beach", Similar: []string{"shore", "boardwalk", "lagoon"}},
				{Word: "library", Similar: []string{"bookstore", "archive", "study hall"}},
				{Word: "airport", Similar: []string{"train station", "bus terminal", "harbor"}},
				{Word: "hospital", Similar: []string{"clinic", "pharmacy", "infirmary"}},
				{Word: "stadium", Similar: []string{"arena", "gymnasium", "racetrack"}},
				{Word: "castle", Similar: []string{"palace", "fortress", "mansion"}},
			},
		},
		{
			Name: "objects",
			Words: []Entry{
				{Word: "umbrella", Similar: []string{"parasol", "raincoat", "awning"}},
				{Word: "guitar", Similar: []string{"ukulele", "banjo", "mandolin"}},
				{Word: "telescope", Similar: []string{"binoculars", "microscope", "periscope"}},
				{Word: "candle", Similar: []string{"lantern", "torch", "oil lamp"}},
				{Word: "backpack", Similar: []string{"suitcase", "duffel bag", "satchel"}},
				{Word: "mirror", Similar: []string{"window", "lens", "picture frame"}},
			},
		},
		{
			Name: "occupations",
			Words: []Entry{
				{Word: "pilot", Similar: []string{"captain", "astronaut", "navigator"}},
				{Word: "chef", Similar: []string{"baker", "butcher", "barista"}},
				{Word: "teacher", Similar: []string{"professor", "tutor", "coach"}},
				{Word: "firefighter", Similar: []string{"paramedic", "police officer", "lifeguard"}},
				{Word: "painter", Similar: []string{"sculptor", "illustrator", "decorator"}},
				{Word: "detective", Similar: []string{"spy", "journalist", "lawyer"}},
			},
		},
		{
			Name: "activities",
			Words: []Entry{
				{Word: "swimming", Similar: []string{"diving", "surfing", "rowing"}},
				{Word: "camping", Similar: []string{"hiking", "fishing", "picnicking"}},
				{Word: "chess", Similar: []string{"checkers", "go", "backgammon"}},
				{Word: "karaoke", Similar: []string{"concert", "dance party", "open mic"}},
				{Word: "skiing", Similar: []string{"snowboarding", "ice skating", "sledding"}},
				{Word: "baking", Similar: []string{"grilling", "brewing", "canning"}},
			},
		},
	}}
}
