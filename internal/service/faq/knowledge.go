package faq

import (
	"fmt"
	"strings"
)

// Lead maps a lowercase hub or region key to its lead string. Keys are
// matched by substring containment against lowercased input, in slice
// order, so aliases must come after the full names they shadow.
type Lead struct {
	Key  string
	Name string
}

// leadNeeded marks hubs that currently have no lead assigned
const leadNeeded = "Lead Needed"

// HubLeads is the hub leads table in priority order
var HubLeads = []Lead{
	{"atlanta", "@Dwayne Benjamin"},
	{"austin", "@Noel Martinez"},
	{"chicago", "@Lauren Prince"},
	{"new york city", "@Clara Kobashigawa & @Noa Golden"},
	{"nyc", "@Clara Kobashigawa & @Noa Golden"},
	{"san francisco", "@Matt Facchin"},
	{"seattle", "@Kaitlyn Cantrell"},
	{"bellevue", "@Kaitlyn Cantrell"},
	{"toronto", "@Nicole Cyhelka & @Akanksha Sharma"},
	{"bbc", leadNeeded},
	{"boston", leadNeeded},
	{"burlington", leadNeeded},
	{"cambridge", leadNeeded},
	{"central florida", "@David Atkins"},
	{"dallas", "@Natalie Millman"},
	{"dc", "@Christine Jean & @Claudia Viscarra"},
	{"denver", "@Julie Durrbeck"},
	{"indy", "@Angi Grant"},
	{"irvine", "@Mina Gendi & @Jenn Simonson"},
	{"socal", "@Mina Gendi & @Jenn Simonson"},
	{"mclean", "@Ana Febres"},
	{"palo alto", "@Yobi Habtamu"},
	{"south florida", "@Elizabeth Tejeda"},
	{"raleigh", "@Blaire Rodgers"},
	{"vancouver", "@Lisa Liu"},
	{"brussels", "@Liesl Houben & @Samuel Alves Rosa"},
	{"france", "@Isabelle Comte, @Ombeline Challet & @Marie-Charlotte de Jaurias"},
	{"paris", "@Isabelle Comte, @Ombeline Challet & @Marie-Charlotte de Jaurias"},
	{"berlin", "@Pierre Jerome Lisson"},
	{"london", "@Yasmin Martin"},
	{"milan", "@Sara Riggi, @Adele Brancadoro, @Mauro Enrico Recalcati, @Laura Valagussa @Luca Sangiorgi"},
	{"amsterdam", "@Guus Paulusse"},
	{"madrid", "@Rafael Escaño"},
	{"zurich", "@Silvia Gönner & @Sophie Hunziker"},
	{"dublin", "@Claire Rowley (Lead Needed)"},
	{"stockholm", leadNeeded},
	{"israel", "@Becky Livshitz & @Ifat Schwartz"},
	{"tel aviv", "@Becky Livshitz & @Ifat Schwartz"},
	{"johannesburg", "@Janneke Henning"},
	{"copenhagen", "@Sonia Blanco-Hansen & @Mari-louise Melchior"},
	{"düsseldorf", "@Michael Schmitz & @Laura Zirkenbach"},
	{"frankfurt", "@Philipp Sparwasser"},
	{"jena", "@Björn Leonhardt"},
	{"manheim", "@Daniel Wagner"},
	{"casablanca", "@Amal Alahkam & @Soukaina Baiti"},
	{"barcelona", "@Valeria Mina & @Dayana Peraza"},
	{"manchester", "@Laura Ward, @Robert Reid @Dave Felcey"},
	{"dubai", "@Maha Alaoui"},
	{"buenos aires", "@Maria Sol Condoleo"},
	{"bogota", "@Elkin Jonnatan Cordoba, @Nataly Quevedo, @Laura Garcia & @Alvaro Sevilla"},
	{"colombia", "@Elkin Jonnatan Cordoba, @Nataly Quevedo, @Laura Garcia & @Alvaro Sevilla"},
	{"mexico city", "@Christian Caballero"},
	{"sao paulo", "@André de Souza @Cynthia Mastrodomenico"},
	{"chile", "@Sebastián Fontana"},
	{"medellín", "(Same as Colombia for now)"},
	{"auckland", "@Renee Hinson (she/her/hers)"},
	{"brisbane", "@Kylee Pinnow"},
	{"canberra", "@Daniel Rushbrook"},
	{"hyderabad", "@Raju Katta & @Anish Paul G"},
	{"bangalore", "@Amarnath Kattani, REWS Support @Kiran Mondal"},
	{"gurgaon", "@Richa Sharma & @Lalita Kandpal"},
	{"jaipur", "@Neelabh Krishna & @Stuti Jain"},
	{"pune", "@Bhavesh Dhamecha"},
	{"singapore", "@Mamta Deshmukh & @Kai Hui Lim"},
	{"sydney", "@Emma Waide"},
	{"tokyo", "@Midori Tokioka"},
	{"mumbai", leadNeeded},
	{"seoul", leadNeeded},
	{"melbourne", "@Jessica Wraith"},
}

// RegionLeads is the region leads table in priority order
var RegionLeads = []Lead{
	{"amer", "@Lauren Prince"},
	{"emea", "@Steph Doel"},
	{"latam", "@Melina Rochi (she/her)"},
	{"india", "@Anshita Sharma"},
	{"asean", "@Anshita Sharma"},
	{"japan", "@Anshita Sharma"},
	{"anz", "@Linda Huynh"},
	{"korea", "@Linda Huynh"},
	{"apac", "@Anshita Sharma (India, ASEAN & Japan) and @Linda Huynh (ANZ & Korea) are the leads for the APAC region."},
}

// Entry is one keyword-tagged knowledge base answer. Entries are
// evaluated in slice order, first match wins.
type Entry struct {
	Keywords    []string
	Answer      string
	Suggestions []string
}

// KnowledgeBase is the scripted Q&A corpus in priority order
var KnowledgeBase = []Entry{
	{
		Keywords: []string{"hi", "hello", "hey", "start"},
		Answer:   "Hello! I'm the Culture Guide Assistant. I'm ready to answer your questions about event planning, rewards points, sustainability, and hub leads.",
		Suggestions: []string{
			"What is the Culture Guides Program?",
			"Who is the Culture Guides Program Owner?",
			"Who is my hub lead?",
			"Who is my regional lead?",
		},
	},
	{
		Keywords: []string{"culture guides program", "what is a culture guide", "what is culture guides", "purpose", "mission"},
		Answer:   "The Culture Guides Program is a global network of employees who bring Salesforce's unique culture to life. Their mission is to foster connection by amplifying marquee events and planning local activities.",
		Suggestions: []string{
			"How do I join?",
			"What is the time commitment?",
			"How are guides rewarded?",
		},
	},
	{
		Keywords: []string{"join", "become a guide", "sign up", "apply"},
		Answer:   "You can sign up via the 'Culture Guide Sign Up Form' workflow in the #cultureguides-global Slack channel. Remember, manager approval is mandatory!",
		Suggestions: []string{
			"What is the time commitment?",
			"What are the rewards?",
			"Is manager approval required?",
		},
	},
	{
		Keywords: []string{"time commitment", "how much time", "hours per month"},
		Answer:   "The expected time commitment is roughly 2-4 hours per month. The role is a one-year term, starting in February.",
		Suggestions: []string{
			"How do I get points?",
			"What are my responsibilities?",
			"Who is my hub lead?",
		},
	},
	{
		Keywords: []string{"points", "rewarded", "rewards", "recognition", "incentives", "what do i get", "rockstars"},
		Answer:   "You earn points for event participation: 100 for project managing, 50 for being a committee member, and 25 for on-site help. You can log these points via the 'Culture Guide Rockstars' workflow in the #cultureguides-global Slack channel to exchange for gifts and prizes quarterly.",
		Suggestions: []string{
			"What are the marquee events?",
			"What's the budget per person?",
			"Who is the lead for Chicago?",
		},
	},
	{
		Keywords: []string{"plan an event", "plan event", "event planning", "where to start", "local event"},
		Answer:   "Start with the '[template] Event Planning Doc.pdf'. It's your main checklist. Remember to consider sustainability, partner with Equality Groups, and use the Employee Event Finder app for registration and feedback.",
		Suggestions: []string{
			"What are the sustainability rules?",
			"What's the budget per person?",
			"How do I get rewards points?",
		},
	},
	{
		Keywords: []string{"funding", "budget", "money", "payment", "p-card"},
		Answer:   "The guideline is to keep events around $30 per person. You can request a budget via the Event Tracker form. Payments can be made with a P-Card (not your T&E Amex). Make sure your vendor accepts Amex or is in Coupa before requesting the budget.",
		Suggestions: []string{
			"How do I plan a sustainable event?",
			"Who is my hub lead?",
			"How do I get points for my event?",
		},
	},
	{
		Keywords: []string{"sustainability", "sustainable", "green event", "eco-friendly"},
		Answer:   "Sustainability is key! The 'Salesforce Event Sustainability Playbook' is your guide. Key tips: no single-use plastics, avoid beef and pork in catering, reuse banners, and ensure all swag is 'earned', not just given away. This means swag is a prize, not a handout.",
		Suggestions: []string{
			"What swag is not allowed?",
			"What are the marquee events?",
			"Who is the lead for Berlin?",
		},
	},
	{
		Keywords: []string{"swag", "giveaways"},
		Answer:   "All swag must be 'earned' as a prize, not just given away. It should be high-quality and sustainable. Items made of plastic, toys, and anything with a lithium-ion battery are not allowed.",
		Suggestions: []string{
			"What are the sustainability rules?",
			"How do I get points?",
			"What is the budget for events?",
		},
	},
	{
		Keywords: []string{"marquee events", "global events"},
		Answer:   "The four main global marquee events are Salesforce's Birthday, Salesforce Adventure Club (our 'bring your kids to work day'), Dreamforce activations, and Peace & Joy.",
		Suggestions: []string{
			"How do I plan a local event?",
			"Who is my hub lead?",
			"How do I get points?",
		},
	},
	{
		Keywords: []string{"slack", "channel"},
		Answer:   "The 'Culture Guide Slack Channels.pdf' has the full list. The main channel for all guides is #cultureguides-global. Hub-specific channels are usually named #cultureguides-[city/country code], like #cultureguides-in for India.",
		Suggestions: []string{
			"Who is the lead for the EMEA region?",
			"What are the marquee events?",
			"How do I get points?",
		},
	},
	{
		Keywords: []string{"meetingforce", "register event", "contract"},
		Answer:   "You must use Meetingforce to register any event that involves 10 or more people AND requires a signed contract with an external vendor. This needs to be done at least 3 weeks before the contract's due date.",
		Suggestions: []string{
			"What is the Employee Event Finder?",
			"What's the budget per person?",
			"How do I pay for things?",
		},
	},
	{
		Keywords: []string{"event finder", "registration", "feedback"},
		Answer:   "The Employee Event Finder app is your tool to manage event registrations, waitlists, and promotion. It also automatically sends a recommended survey to collect feedback from attendees after the event.",
		Suggestions: []string{
			"How do I use Meetingforce?",
			"What tags should I use for my event?",
			"What are the marquee events?",
		},
	},
	{
		Keywords: []string{"oktoberquest", "octoberquest"},
		Answer:   "OktoberQuest is an annual challenge to boost employee connection. Participants complete tasks like attending events, volunteering, and connecting with colleagues for a chance to win prizes, such as a VTO trip to South Africa or a tech carrying case.",
		Suggestions: []string{
			"What is the Agentforce AR App?",
			"How are guides rewarded?",
			"What are the marquee events?",
		},
	},
	{
		Keywords: []string{"agentforce", "ar app"},
		Answer:   "The Agentforce AR app is an augmented reality experience for events. It lets attendees take selfies with our agents and learn about the Agentforce story in an immersive way. It's a great tool for both employee and customer events.",
		Suggestions: []string{
			"What is OktoberQuest?",
			"How do I plan an event?",
			"Who is my hub lead?",
		},
	},
	{
		Keywords:    []string{"thank you", "thanks", "bye", "great"},
		Answer:      "You're welcome! I'm here if you have any more questions. Happy to help!",
		Suggestions: []string{},
	},
}

// SystemPrompt assembles the assistant system prompt for the streaming
// chat endpoint from the same tables the scripted engine uses.
func SystemPrompt(today string) string {
	var hubs, regions strings.Builder
	for _, h := range HubLeads {
		fmt.Fprintf(&hubs, "%s: %s\n", h.Key, h.Name)
	}
	for _, r := range RegionLeads {
		fmt.Fprintf(&regions, "%s: %s\n", r.Key, r.Name)
	}

	return fmt.Sprintf(`You are the Culture Guides Assistant for Salesforce. You are helpful, friendly, and knowledgeable.

Today's date is: %s

RULES:
1. You can answer general questions (dates, common knowledge, greetings, etc.) helpfully.
2. Your primary focus is the Culture Guides program — always offer to help with that after a general question.
3. For hub lead questions: find ONLY the exact city mentioned. Return ONLY that city's lead. Do NOT mention other cities or mix entries.
4. Never guess or combine leads from multiple cities. If a city is not listed, say so clearly.
5. Keep answers short and direct. One or two sentences is usually enough.

HUB LEADS (format: city: lead)
%s
REGION LEADS (format: region: lead)
%s
KEY FACTS:
- Program Owner: @Steph Doel (also EMEA Lead)
- Program: Global network of Salesforce employees who foster connection through events and local activities.
- How to join: Sign up via "Culture Guide Sign Up Form" Slack workflow. Manager approval is required before signing up.
- Time commitment: 2-4 hours per month. One-year term (with option to renew).
- Recommended hub size: 5-10 Culture Guides per hub, including a lead or co-lead.

POINTS & REWARDS:
- Project Manage Event: 100 points
- Working Committee Member: 50 points
- On-site Help / Logistics: 25 points
- Log points via the "Culture Guide Rockstars" workflow in #cultureguides-global.
- Points are exchanged quarterly for gifts, prizes, and Culture Guides swag on the official gifting site.
- Top earners each quarter may earn bigger rewards at year-end.

MARQUEE EVENTS:
- Salesforce Birthday
- Salesforce Adventure Club
- ALD Agentforce Learning Day
- Dreamforce activations
- Peace & Joy
- Volunteer events
- ALLY`, today, hubs.String(), regions.String())
}
