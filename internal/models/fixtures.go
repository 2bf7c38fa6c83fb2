package models

// SampleUsers is the built-in directory used when no database is configured
// and by the seeding script.
func SampleUsers() []User {
	return []User{
		{
			ID:       1,
			Name:     "John Doe",
			Username: "johnd",
			Email:    "johndoe@solutioncorp.com",
			Phone:    "1-770-736-8031",
			Website:  "solutioncorp.com",
			Address: Address{
				Street:  "Kulas Light",
				Suite:   "Apt. 556",
				City:    "Gwenborough",
				Zipcode: "92998-3874",
				Geo:     Geo{Lat: "-37.3159", Lng: "81.1496"},
			},
			Company: Company{
				Name:        "Solution Corp",
				CatchPhrase: "Multi-layered client-server neural-net",
				BS:          "harness real-time e-markets",
			},
		},
		{
			ID:       2,
			Name:     "Jane Doe",
			Username: "janed",
			Email:    "janedoe@megacorp.com",
			Phone:    "010-692-6593",
			Website:  "megacorp.com",
			Address: Address{
				Street:  "Victor Plains",
				Suite:   "Suite 879",
				City:    "Wisokyburgh",
				Zipcode: "90566-7771",
				Geo:     Geo{Lat: "-43.9509", Lng: "-34.4618"},
			},
			Company: Company{
				Name:        "Mega Corp",
				CatchPhrase: "Proactive didactic contingency",
				BS:          "synergize scalable supply-chains",
			},
		},
		{
			ID:       3,
			Name:     "Clementine Bauch",
			Username: "samantha",
			Email:    "nathan@yesenia.net",
			Phone:    "1-463-123-4447",
			Website:  "ramiro.info",
			Address: Address{
				Street:  "Douglas Extension",
				Suite:   "Suite 847",
				City:    "McKenziehaven",
				Zipcode: "59590-4157",
				Geo:     Geo{Lat: "-68.6102", Lng: "-47.0653"},
			},
			Company: Company{
				Name:        "Romaguera-Jacobson",
				CatchPhrase: "Face to face bifurcated interface",
				BS:          "e-enable strategic applications",
			},
		},
	}
}
