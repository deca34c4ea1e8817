package heritage

// SampleItems returns the built-in offline catalog. A fresh slice is
// returned on every call.
func SampleItems() []Item {
	return []Item{
		{
			ID: "1", Title: "Mask of Tutankhamun", Subtitle: "18th Dynasty Royal Funerary Mask",
			Era: "Ancient Egypt · 1323 BC", Culture: "Egyptian",
			ImageURL: "https://images.metmuseum.org/CRDImages/eg/original/DP251139.jpg",
			Views:    124000, Likes: 8420, IsAR: true, Category: "artifacts", Location: "Cairo, Egypt",
			Description: "The death mask of Tutankhamun is a gold mask of the mummy of the 18th-dynasty Ancient Egyptian Pharaoh Tutankhamun. It is one of the most famous works of art in the world.",
			Tags:        []string{"gold", "funerary", "royal", "18th dynasty"},
			Year:        -1323,
		},
		{
			ID: "2", Title: "Colosseum", Subtitle: "Flavian Amphitheatre",
			Era: "Roman Empire · 70–80 AD", Culture: "Roman",
			ImageURL: "https://images.metmuseum.org/CRDImages/gr/original/DP132633.jpg",
			Views:    892000, Likes: 32100, IsAR: true, Category: "monuments", Location: "Rome, Italy",
			Description: "The Colosseum is an oval amphitheatre in the centre of the city of Rome, Italy. Built of travertine limestone, volcanic tuff, and brick-faced concrete.",
			Tags:        []string{"amphitheatre", "roman", "gladiatorial", "architecture"},
			Year:        70,
		},
		{
			ID: "3", Title: "Venus de Milo", Subtitle: "Ancient Greek Sculpture",
			Era: "Hellenistic · 130–100 BC", Culture: "Greek",
			ImageURL: "https://images.metmuseum.org/CRDImages/gr/original/DP121212.jpg",
			Views:    234000, Likes: 14200, IsAR: false, Category: "artifacts", Location: "Louvre, Paris",
			Description: "The Venus de Milo is an ancient Greek sculpture and one of the most famous works of ancient Greek sculpture. Created sometime between 130 and 100 BC.",
			Tags:        []string{"sculpture", "marble", "goddess", "hellenistic"},
			Year:        -130,
		},
		{
			ID: "4", Title: "Stonehenge", Subtitle: "Neolithic Monument",
			Era: "Prehistoric · 3000 BC", Culture: "Celtic",
			ImageURL: "https://images.metmuseum.org/CRDImages/gr/original/DP114888.jpg",
			Views:    675000, Likes: 28900, IsAR: true, Category: "monuments", Location: "Wiltshire, UK",
			Description: "Stonehenge is a prehistoric monument on Salisbury Plain in Wiltshire, England. Its main phase of construction took place between 3000 and 1500 BC.",
			Tags:        []string{"megalith", "prehistoric", "ritual", "astronomy"},
			Year:        -3000,
		},
		{
			ID: "5", Title: "Cuneiform Tablet", Subtitle: "Epic of Gilgamesh Fragment",
			Era: "Mesopotamian · 2100 BC", Culture: "Mesopotamian",
			ImageURL: "https://images.metmuseum.org/CRDImages/an/original/DP251139.jpg",
			Views:    87000, Likes: 5600, IsAR: false, Category: "artifacts", Location: "British Museum, London",
			Description: "One of the earliest forms of written literature, this clay tablet contains fragments of the Epic of Gilgamesh, humanity's oldest known work of literary fiction.",
			Tags:        []string{"writing", "literature", "clay", "sumerian"},
			Year:        -2100,
		},
		{
			ID: "6", Title: "Notre-Dame Cathedral", Subtitle: "French Gothic Architecture",
			Era: "Medieval · 1163 AD", Culture: "French",
			ImageURL: "https://images.metmuseum.org/CRDImages/md/original/DP251139.jpg",
			Views:    1200000, Likes: 47300, IsAR: true, Category: "monuments", Location: "Paris, France",
			Description: "Notre-Dame de Paris is a medieval Catholic cathedral on the Île de la Cité in the 4th arrondissement of Paris. The cathedral is considered to be one of the finest examples of French Gothic architecture.",
			Tags:        []string{"gothic", "cathedral", "medieval", "paris"},
			Year:        1163,
		},
		{
			ID: "7", Title: "Terracotta Army", Subtitle: "Mausoleum of Qin Shi Huang",
			Era: "Qin Dynasty · 210 BC", Culture: "Chinese",
			ImageURL: "https://images.metmuseum.org/CRDImages/as/original/DP251139.jpg",
			Views:    445000, Likes: 19800, IsAR: true, Category: "artifacts", Location: "Xi'an, China",
			Description: "The Terracotta Army is a collection of terracotta sculptures depicting the armies of Qin Shi Huang, the first emperor of China. The figures date to the late third century BCE.",
			Tags:        []string{"terracotta", "military", "imperial", "burial"},
			Year:        -210,
		},
		{
			ID: "8", Title: "Acropolis of Athens", Subtitle: "Sacred Rock of Athens",
			Era: "Classical · 5th century BC", Culture: "Greek",
			ImageURL: "https://images.metmuseum.org/CRDImages/gr/original/DP114889.jpg",
			Views:    788000, Likes: 36500, IsAR: false, Category: "monuments", Location: "Athens, Greece",
			Description: "The Acropolis of Athens is an ancient citadel located on a rocky outcrop above the city of Athens, containing the remains of several ancient buildings of great architectural and historical significance.",
			Tags:        []string{"parthenon", "classical", "greek", "acropolis"},
			Year:        -450,
		},
	}
}
