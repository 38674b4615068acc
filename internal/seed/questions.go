package seed

import "mannerisms/internal/quiz"

type basicSeed struct {
	question      string
	options       []string
	correctAnswer string
	explanation   string
	category      string
	difficulty    string
	culture       string
}

type advancedSeed struct {
	question      string
	culture       string
	correctAnswer string
}

var basicSeeds = []basicSeed{
	{
		question: "In Western professional settings, what is the most appropriate greeting?",
		options: []string{
			"A firm handshake with direct eye contact",
			"A hug and kiss on both cheeks",
			"A casual wave and 'hey'",
			"A bow with hands clasped",
		},
		correctAnswer: "A firm handshake with direct eye contact",
		explanation:   "In Western professional settings, a firm handshake with direct eye contact is considered the most appropriate greeting. It conveys confidence, respect, and professionalism.",
		category:      "Greetings",
		difficulty:    "Easy",
		culture:       quiz.CultureWestern,
	},
	{
		question: "In Western business culture, what is considered appropriate regarding punctuality?",
		options: []string{
			"Arrive 5-10 minutes early",
			"Arrive exactly on time",
			"Arrive 5-10 minutes late",
			"Arrive whenever convenient",
		},
		correctAnswer: "Arrive 5-10 minutes early",
		explanation:   "In Western business culture, arriving 5-10 minutes early is considered professional and respectful. It shows you value others' time and are well-prepared.",
		category:      "Punctuality",
		difficulty:    "Easy",
		culture:       quiz.CultureWestern,
	},
	{
		question: "When dining at a formal Western restaurant, which utensil should you use first?",
		options: []string{
			"Start from the outside and work your way in",
			"Start from the inside and work your way out",
			"Use any utensil you prefer",
			"Wait for others to start",
		},
		correctAnswer: "Start from the outside and work your way in",
		explanation:   "In Western dining etiquette, you should start with the utensils farthest from your plate and work your way inward with each course.",
		category:      "Dining",
		difficulty:    "Medium",
		culture:       quiz.CultureWestern,
	},
	{
		question: "In Western workplaces, what is the appropriate way to address your supervisor?",
		options: []string{
			"Use their first name unless told otherwise",
			"Always use 'Mr.' or 'Ms.' with their last name",
			"Use 'Sir' or 'Ma'am'",
			"Use their title followed by their last name",
		},
		correctAnswer: "Use their first name unless told otherwise",
		explanation:   "Western workplaces generally follow a more egalitarian approach. Using first names is common unless specifically told otherwise or in very formal settings.",
		category:      "Workplace",
		difficulty:    "Medium",
		culture:       quiz.CultureWestern,
	},
	{
		question: "When attending a Western-style wedding, what is the appropriate gift-giving etiquette?",
		options: []string{
			"Give a gift from the registry or cash in a card",
			"Bring a homemade gift only",
			"Give a gift worth at least $500",
			"Gifts are optional",
		},
		correctAnswer: "Give a gift from the registry or cash in a card",
		explanation:   "In Western wedding etiquette, it's customary to give a gift from the couple's registry or cash in a card. The gift should be thoughtful but not necessarily extravagant.",
		category:      "Gift Giving",
		difficulty:    "Medium",
		culture:       quiz.CultureWestern,
	},

	{
		question: "In East Asian business settings, what is the most appropriate greeting?",
		options: []string{
			"A slight bow with hands at sides",
			"A firm handshake",
			"A hug",
			"A high-five",
		},
		correctAnswer: "A slight bow with hands at sides",
		explanation:   "In East Asian business culture, a slight bow is the traditional and respectful way to greet others. The depth of the bow can vary based on seniority and formality.",
		category:      "Greetings",
		difficulty:    "Easy",
		culture:       quiz.CultureEastAsian,
	},
	{
		question: "When attending a formal East Asian dinner, what should you do with chopsticks when not eating?",
		options: []string{
			"Place them parallel on the chopstick rest",
			"Stick them vertically in rice",
			"Cross them on the plate",
			"Leave them on the table",
		},
		correctAnswer: "Place them parallel on the chopstick rest",
		explanation:   "In East Asian dining etiquette, chopsticks should be placed parallel on the chopstick rest when not in use. Sticking them vertically in rice is considered disrespectful as it resembles funeral rituals.",
		category:      "Dining",
		difficulty:    "Medium",
		culture:       quiz.CultureEastAsian,
	},
	{
		question: "In East Asian business meetings, what is the appropriate way to present a business card?",
		options: []string{
			"Present with both hands and a slight bow",
			"Toss it across the table",
			"Hand it with one hand",
			"Leave it on the table",
		},
		correctAnswer: "Present with both hands and a slight bow",
		explanation:   "Business cards (meishi) are presented with both hands and a slight bow in East Asian business culture. This shows respect and proper etiquette.",
		category:      "Business",
		difficulty:    "Easy",
		culture:       quiz.CultureEastAsian,
	},
	{
		question: "When visiting someone's home in East Asia, what should you do with your shoes?",
		options: []string{
			"Remove them before entering",
			"Wipe them on the doormat",
			"Keep them on",
			"Take them off only in certain rooms",
		},
		correctAnswer: "Remove them before entering",
		explanation:   "In East Asian homes, it's customary to remove shoes before entering. This is a sign of respect and helps maintain cleanliness.",
		category:      "Social",
		difficulty:    "Easy",
		culture:       quiz.CultureEastAsian,
	},
	{
		question: "In East Asian gift-giving, what is considered appropriate?",
		options: []string{
			"Give gifts in even numbers",
			"Give gifts in odd numbers",
			"Give gifts in any number",
			"Avoid giving gifts",
		},
		correctAnswer: "Give gifts in even numbers",
		explanation:   "In East Asian culture, gifts are typically given in even numbers as odd numbers are associated with funerals. The number 4 is particularly avoided as it sounds like 'death' in some languages.",
		category:      "Gift Giving",
		difficulty:    "Medium",
		culture:       quiz.CultureEastAsian,
	},

	{
		question: "In South Asian culture, what is the traditional greeting gesture?",
		options: []string{
			"Namaste with folded hands",
			"A firm handshake",
			"A hug",
			"A high-five",
		},
		correctAnswer: "Namaste with folded hands",
		explanation:   "The traditional greeting in South Asian culture is 'Namaste' with folded hands (anjali mudra). This gesture shows respect and humility.",
		category:      "Greetings",
		difficulty:    "Easy",
		culture:       quiz.CultureSouthAsian,
	},
	{
		question: "When dining in South Asian culture, what is the appropriate way to eat?",
		options: []string{
			"Use your right hand only",
			"Use both hands",
			"Use utensils only",
			"Use any method",
		},
		correctAnswer: "Use your right hand only",
		explanation:   "In South Asian dining etiquette, it's traditional to eat with the right hand only, as the left hand is considered unclean. However, utensils are also commonly used in formal settings.",
		category:      "Dining",
		difficulty:    "Medium",
		culture:       quiz.CultureSouthAsian,
	},
	{
		question: "In South Asian business meetings, what is the appropriate way to address elders?",
		options: []string{
			"Use 'Sir' or 'Madam' with respect",
			"Use their first name",
			"Use their last name only",
			"Use any form of address",
		},
		correctAnswer: "Use 'Sir' or 'Madam' with respect",
		explanation:   "In South Asian business culture, showing respect to elders is crucial. Using 'Sir' or 'Madam' is appropriate, and sometimes adding 'ji' (in India) or 'sahib' (in Pakistan) shows extra respect.",
		category:      "Business",
		difficulty:    "Easy",
		culture:       quiz.CultureSouthAsian,
	},
	{
		question: "When visiting a South Asian home, what should you bring?",
		options: []string{
			"Sweets or fruits",
			"Wine or alcohol",
			"Money",
			"Nothing",
		},
		correctAnswer: "Sweets or fruits",
		explanation:   "When visiting a South Asian home, it's customary to bring sweets or fruits as a gift. Alcohol is generally not appropriate as a gift in traditional households.",
		category:      "Social",
		difficulty:    "Easy",
		culture:       quiz.CultureSouthAsian,
	},
	{
		question: "In South Asian culture, what is the appropriate way to show respect to elders?",
		options: []string{
			"Touch their feet or bow slightly",
			"Shake their hand",
			"Hug them",
			"Wave at them",
		},
		correctAnswer: "Touch their feet or bow slightly",
		explanation:   "In South Asian culture, touching the feet of elders or bowing slightly is a traditional way to show respect and seek their blessings.",
		category:      "Respect",
		difficulty:    "Medium",
		culture:       quiz.CultureSouthAsian,
	},

	{
		question: "In Middle Eastern business settings, what is the most appropriate greeting?",
		options: []string{
			"A warm handshake with eye contact",
			"A hug and kiss on both cheeks",
			"A casual wave",
			"A nod only",
		},
		correctAnswer: "A warm handshake with eye contact",
		explanation:   "In Middle Eastern business culture, a warm handshake with eye contact is the standard greeting. The handshake may be held longer than in Western cultures.",
		category:      "Greetings",
		difficulty:    "Easy",
		culture:       quiz.CultureMiddleEastern,
	},
	{
		question: "When dining in Middle Eastern culture, what is the appropriate way to eat?",
		options: []string{
			"Use your right hand only",
			"Use both hands",
			"Use utensils only",
			"Use any method",
		},
		correctAnswer: "Use your right hand only",
		explanation:   "In Middle Eastern dining etiquette, it's traditional to eat with the right hand only, as the left hand is considered unclean. However, utensils are commonly used in formal settings.",
		category:      "Dining",
		difficulty:    "Medium",
		culture:       quiz.CultureMiddleEastern,
	},
	{
		question: "In Middle Eastern business meetings, what is the appropriate way to show respect?",
		options: []string{
			"Show patience and avoid rushing",
			"Be direct and quick",
			"Interrupt when needed",
			"Leave early if bored",
		},
		correctAnswer: "Show patience and avoid rushing",
		explanation:   "Middle Eastern business culture values relationship-building and patience. Rushing through meetings or being too direct can be considered disrespectful.",
		category:      "Business",
		difficulty:    "Medium",
		culture:       quiz.CultureMiddleEastern,
	},
	{
		question: "When visiting a Middle Eastern home, what should you do with your shoes?",
		options: []string{
			"Remove them before entering",
			"Wipe them on the doormat",
			"Keep them on",
			"Take them off only in certain rooms",
		},
		correctAnswer: "Remove them before entering",
		explanation:   "In Middle Eastern homes, it's customary to remove shoes before entering. This is a sign of respect and helps maintain cleanliness.",
		category:      "Social",
		difficulty:    "Easy",
		culture:       quiz.CultureMiddleEastern,
	},
	{
		question: "In Middle Eastern gift-giving, what should you avoid giving?",
		options: []string{
			"Alcohol or pork products",
			"Flowers",
			"Chocolate",
			"Books",
		},
		correctAnswer: "Alcohol or pork products",
		explanation:   "In Middle Eastern culture, alcohol and pork products are not appropriate gifts due to religious restrictions. Flowers, chocolate, and books are generally acceptable.",
		category:      "Gift Giving",
		difficulty:    "Medium",
		culture:       quiz.CultureMiddleEastern,
	},
}

var advancedSeeds = []advancedSeed{
	{
		question:      "You are invited to a colleague's home for dinner in the United States. Describe how you should behave from arrival to departure.",
		culture:       quiz.CultureWestern,
		correctAnswer: "Arrive on time or a few minutes late but never early, bring a small gift such as wine, flowers or dessert, wait for the host to start eating, keep phones away, offer to help clear up, and send a thank-you message the next day.",
	},
	{
		question:      "Explain how to exchange business cards and seat yourself at a first business meeting in Japan.",
		culture:       quiz.CultureEastAsian,
		correctAnswer: "Offer the card with both hands, text facing the recipient, with a slight bow; receive cards with both hands, study them and place them on the table rather than pocketing them; wait to be shown your seat, since the seat farthest from the door is reserved for the most senior guest.",
	},
	{
		question:      "How should you behave when invited to a family meal in an Indian household?",
		culture:       quiz.CultureSouthAsian,
		correctAnswer: "Remove shoes at the door, greet elders first with namaste, bring sweets or fruit rather than alcohol, eat and pass food with the right hand, accept second helpings graciously, and expect the host to insist you eat more.",
	},
	{
		question:      "Describe appropriate conduct when a host in Saudi Arabia offers you Arabic coffee during a business visit.",
		culture:       quiz.CultureMiddleEastern,
		correctAnswer: "Accept the coffee with your right hand, as refusing can seem rude; drink a small cup or a few refills, and gently shake the cup side to side when you have had enough; take time for conversation before discussing business.",
	},
}
