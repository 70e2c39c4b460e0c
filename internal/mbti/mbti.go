// ABOUTME: Static MBTI personality type to recommended job table.
// ABOUTME: Lookup is case-insensitive; the table never changes at runtime.
package mbti

import (
	"strings"
)

// Job is one recommended career with a short description.
type Job struct {
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// types lists the 16 keys in canonical order.
var types = []string{
	"ISTJ", "ISFJ", "INFJ", "INTJ",
	"ISTP", "ISFP", "INFP", "INTP",
	"ESTP", "ESFP", "ENFP", "ENTP",
	"ESTJ", "ESFJ", "ENFJ", "ENTJ",
}

var jobs = map[string][]Job{
	"ISTJ": {
		{"📊", "Accountant", "Manages financial records and taxes for companies and individuals"},
		{"🏛️", "Civil servant", "Carries out administrative work for national and local government"},
		{"📈", "Data analyst", "Collects and analyzes data to support decision making"},
		{"🔍", "Quality control specialist", "Maintains and improves the quality of products and services"},
	},
	"ISFJ": {
		{"🩺", "Nurse", "Cares for patients and supports their recovery in clinics and hospitals"},
		{"📚", "Librarian", "Organizes collections and helps people find the information they need"},
		{"🧑‍🏫", "Elementary school teacher", "Guides young students through their first years of learning"},
		{"🗂️", "Office administrator", "Keeps an organization's daily operations running smoothly"},
	},
	"INFJ": {
		{"🧠", "Counselor", "Helps people work through personal and emotional difficulties"},
		{"✍️", "Writer", "Communicates ideas and stories through the written word"},
		{"🤝", "Social worker", "Connects people in need with support and resources"},
		{"🎓", "Psychologist", "Studies behavior and helps clients improve their wellbeing"},
	},
	"INTJ": {
		{"🔬", "Research scientist", "Designs experiments to answer open questions in a field"},
		{"🧩", "Strategy consultant", "Analyzes organizations and plans their long-term direction"},
		{"💻", "Software architect", "Designs the overall structure of large software systems"},
		{"⚖️", "Lawyer", "Advises clients and argues cases using careful reasoning"},
	},
	"ISTP": {
		{"🔧", "Mechanical engineer", "Designs and maintains machines and mechanical systems"},
		{"✈️", "Pilot", "Operates aircraft safely under changing conditions"},
		{"🛡️", "Security engineer", "Finds and fixes weaknesses in systems and networks"},
		{"🚑", "Paramedic", "Responds to emergencies and gives care on the scene"},
	},
	"ISFP": {
		{"🎨", "Designer", "Creates visual work that balances beauty and usefulness"},
		{"📷", "Photographer", "Captures people, places, and moments through the camera"},
		{"🌿", "Florist", "Arranges plants and flowers for events and everyday spaces"},
		{"💆", "Physical therapist", "Helps patients regain movement and manage pain"},
	},
	"INFP": {
		{"📖", "Novelist", "Builds characters and worlds through long-form fiction"},
		{"🎵", "Musician", "Composes or performs music that expresses emotion"},
		{"🧑‍⚕️", "Art therapist", "Uses creative activity to support mental health"},
		{"🌍", "NGO worker", "Works for causes and communities through nonprofit organizations"},
	},
	"INTP": {
		{"🧪", "Scientist", "Explores theories and tests them through observation and experiment"},
		{"👨‍💻", "Software developer", "Builds and maintains programs and services"},
		{"📐", "Mathematician", "Develops and applies abstract models to solve problems"},
		{"🏫", "Professor", "Researches a field and teaches it at university level"},
	},
	"ESTP": {
		{"💼", "Sales representative", "Builds client relationships and closes deals"},
		{"🏃", "Athlete", "Competes and trains at a high level of physical performance"},
		{"🚓", "Police officer", "Protects the public and responds to incidents"},
		{"🏗️", "Entrepreneur", "Starts and grows new businesses by taking calculated risks"},
	},
	"ESFP": {
		{"🎭", "Actor", "Performs roles on stage, screen, or in front of an audience"},
		{"🎤", "Event host", "Leads events and keeps the audience engaged"},
		{"✈️", "Flight attendant", "Looks after passenger safety and comfort on flights"},
		{"🏋️", "Fitness trainer", "Coaches people toward their health and fitness goals"},
	},
	"ENFP": {
		{"📢", "Marketer", "Plans campaigns that connect products with people"},
		{"🎬", "Content creator", "Produces videos, posts, and media for an audience"},
		{"🧭", "Career coach", "Helps people discover and pursue meaningful work"},
		{"📰", "Journalist", "Investigates and reports stories that matter to the public"},
	},
	"ENTP": {
		{"🚀", "Startup founder", "Turns new ideas into products and companies"},
		{"💡", "Product manager", "Decides what to build and aligns teams around it"},
		{"🗣️", "Debate coach", "Trains people to build and defend arguments"},
		{"📡", "Innovation consultant", "Helps organizations find and test new opportunities"},
	},
	"ESTJ": {
		{"🏢", "Business manager", "Runs teams and operations to meet organizational goals"},
		{"🏦", "Bank manager", "Oversees branch operations, staff, and client accounts"},
		{"🪖", "Military officer", "Leads units and plans operations with discipline"},
		{"📋", "Project manager", "Keeps projects on schedule, on budget, and on scope"},
	},
	"ESFJ": {
		{"🏥", "Healthcare administrator", "Coordinates the services and staff of a care facility"},
		{"🧑‍🍳", "Hospitality manager", "Makes sure guests are welcomed and well served"},
		{"👥", "HR specialist", "Supports employees from hiring through development"},
		{"🍎", "Teacher", "Helps students learn and grow in a classroom"},
	},
	"ENFJ": {
		{"🎙️", "Trainer", "Designs and leads programs that build people's skills"},
		{"🌱", "Nonprofit director", "Leads an organization working toward a social mission"},
		{"🗳️", "Public relations manager", "Shapes how an organization communicates with the public"},
		{"🧑‍🤝‍🧑", "Community organizer", "Brings people together around shared goals"},
	},
	"ENTJ": {
		{"👔", "Executive", "Sets direction and makes the key decisions for a company"},
		{"📊", "Management consultant", "Diagnoses business problems and drives change"},
		{"💰", "Investment banker", "Structures deals and raises capital for clients"},
		{"⚖️", "Judge", "Weighs evidence and rules on legal disputes"},
	},
}

// Lookup returns the recommended jobs for a personality type.
// The key is matched case-insensitively; unknown keys return false.
func Lookup(key string) ([]Job, bool) {
	list, ok := jobs[strings.ToUpper(strings.TrimSpace(key))]
	if !ok {
		return nil, false
	}
	return append([]Job(nil), list...), true
}

// Types returns all personality type keys in canonical order.
func Types() []string {
	return append([]string(nil), types...)
}

// IsValid reports whether key names a known personality type.
func IsValid(key string) bool {
	_, ok := jobs[strings.ToUpper(strings.TrimSpace(key))]
	return ok
}
