package faq

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Entry is one canonical question/answer pair. The corpus is loaded at
// startup and immutable afterwards.
type Entry struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LoadCorpus reads a JSON corpus file ([]Entry).
func LoadCorpus(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no entries", path)
	}

	return entries, nil
}

// Categories returns the sorted distinct categories of a corpus.
func Categories(entries []Entry) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// ByCategory filters a corpus down to one category.
func ByCategory(entries []Entry, category string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// DefaultCorpus is the built-in healthcare FAQ dataset.
func DefaultCorpus() []Entry {
	return []Entry{
		{
			Category: "general_health",
			Question: "What are the symptoms of flu?",
			Answer:   "Common flu symptoms include fever, chills, muscle aches, cough, congestion, runny nose, headaches, and fatigue. Symptoms typically last 3-7 days.",
		},
		{
			Category: "prevention",
			Question: "How can I prevent getting sick?",
			Answer:   "To prevent illness: wash hands frequently, get vaccinated, eat a balanced diet, exercise regularly, get adequate sleep, manage stress, and avoid close contact with sick people.",
		},
		{
			Category: "symptoms",
			Question: "What should I do if I have a fever?",
			Answer:   "For fever: rest, drink plenty of fluids, take fever-reducing medication like acetaminophen or ibuprofen, and seek medical attention if fever exceeds 103°F (39.4°C) or persists for more than 3 days.",
		},
		{
			Category: "covid19",
			Question: "What are COVID-19 symptoms?",
			Answer:   "COVID-19 symptoms include fever, cough, shortness of breath, fatigue, muscle aches, headache, loss of taste or smell, sore throat, congestion, nausea, and diarrhea.",
		},
		{
			Category: "covid19",
			Question: "How long should I quarantine if I have COVID-19?",
			Answer:   "If you test positive for COVID-19, isolate for at least 5 days from symptom onset or positive test. You can end isolation after day 5 if fever-free for 24 hours and symptoms are improving.",
		},
		{
			Category: "medications",
			Question: "How much acetaminophen can I take?",
			Answer:   "Adults can take 325-650mg of acetaminophen every 4-6 hours, not exceeding 3000mg per day. Always follow package instructions and consult a healthcare provider for personalized advice.",
		},
		{
			Category: "medications",
			Question: "Can I take ibuprofen with acetaminophen?",
			Answer:   "Yes, ibuprofen and acetaminophen can generally be taken together as they work differently. However, consult your healthcare provider or pharmacist for proper dosing and timing.",
		},
		{
			Category: "emergency",
			Question: "When should I go to the emergency room?",
			Answer:   "Seek emergency care for: chest pain, difficulty breathing, severe bleeding, signs of stroke, severe allergic reactions, high fever with stiff neck, or any life-threatening condition.",
		},
		{
			Category: "emergency",
			Question: "What are signs of a heart attack?",
			Answer:   "Heart attack symptoms include chest pain or discomfort, shortness of breath, nausea, lightheadedness, cold sweats, and pain in arms, back, neck, jaw, or stomach. Call 911 immediately.",
		},
		{
			Category: "chronic_conditions",
			Question: "How can I manage diabetes?",
			Answer:   "Diabetes management includes monitoring blood sugar, taking medications as prescribed, eating a balanced diet, exercising regularly, maintaining a healthy weight, and regular medical checkups.",
		},
		{
			Category: "chronic_conditions",
			Question: "What foods should diabetics avoid?",
			Answer:   "Diabetics should limit sugary drinks, refined carbohydrates, processed foods, high-sodium foods, and trans fats. Focus on whole grains, lean proteins, vegetables, and fruits in moderation.",
		},
		{
			Category: "mental_health",
			Question: "How can I manage stress?",
			Answer:   "Stress management techniques include regular exercise, meditation, deep breathing, adequate sleep, healthy eating, social support, time management, and professional counseling when needed.",
		},
		{
			Category: "mental_health",
			Question: "What are signs of depression?",
			Answer:   "Depression symptoms include persistent sadness, loss of interest, fatigue, sleep changes, appetite changes, difficulty concentrating, feelings of worthlessness, and thoughts of self-harm.",
		},
		{
			Category: "nutrition",
			Question: "What constitutes a healthy diet?",
			Answer:   "A healthy diet includes fruits, vegetables, whole grains, lean proteins, healthy fats, and adequate water. Limit processed foods, added sugars, and excessive sodium.",
		},
		{
			Category: "nutrition",
			Question: "How much water should I drink daily?",
			Answer:   "Adults should aim for about 8 glasses (64 ounces) of water daily, though needs vary based on activity level, climate, and individual factors. Listen to your body's thirst cues.",
		},
		{
			Category: "fitness",
			Question: "How much exercise do I need?",
			Answer:   "Adults should get at least 150 minutes of moderate-intensity aerobic activity or 75 minutes of vigorous activity weekly, plus muscle-strengthening activities twice a week.",
		},
		{
			Category: "fitness",
			Question: "Is it safe to exercise when sick?",
			Answer:   "Light exercise may be okay with mild cold symptoms above the neck. Avoid exercise with fever, body aches, or symptoms below the neck. Listen to your body and rest when needed.",
		},
		{
			Category: "sleep",
			Question: "How much sleep do adults need?",
			Answer:   "Most adults need 7-9 hours of sleep per night. Good sleep hygiene includes consistent bedtime, comfortable environment, avoiding screens before bed, and limiting caffeine.",
		},
		{
			Category: "sleep",
			Question: "What can I do for insomnia?",
			Answer:   "For insomnia: maintain regular sleep schedule, create relaxing bedtime routine, avoid caffeine late in day, exercise regularly, manage stress, and consult a healthcare provider if persistent.",
		},
		{
			Category: "vaccinations",
			Question: "What vaccines do adults need?",
			Answer:   "Adults typically need annual flu vaccine, COVID-19 boosters, Tdap every 10 years, and others based on age, health conditions, and travel. Consult your healthcare provider.",
		},
		{
			Category: "vaccinations",
			Question: "Are vaccines safe?",
			Answer:   "Yes, vaccines are rigorously tested for safety and effectiveness. Serious side effects are rare. The benefits of vaccination far outweigh the risks for most people.",
		},
		{
			Category: "womens_health",
			Question: "How often should women get mammograms?",
			Answer:   "Women should discuss mammogram screening with their healthcare provider. Generally recommended annually or biannually starting at age 40-50, depending on risk factors.",
		},
		{
			Category: "womens_health",
			Question: "What are normal menstrual cycle symptoms?",
			Answer:   "Normal menstrual symptoms may include mild cramping, bloating, mood changes, and breast tenderness. Severe pain, heavy bleeding, or irregular cycles should be evaluated.",
		},
		{
			Category: "mens_health",
			Question: "When should men get prostate screening?",
			Answer:   "Men should discuss prostate screening with their healthcare provider starting at age 50, or earlier (age 45) if at higher risk due to family history or ethnicity.",
		},
		{
			Category: "skin_health",
			Question: "How can I protect my skin from sun damage?",
			Answer:   "Protect skin by using broad-spectrum SPF 30+ sunscreen, wearing protective clothing, seeking shade during peak hours (10am-4pm), and avoiding tanning beds.",
		},
		{
			Category: "skin_health",
			Question: "When should I see a dermatologist about a mole?",
			Answer:   "See a dermatologist if a mole changes in size, shape, color, or texture, becomes asymmetrical, has irregular borders, or if you notice new moles after age 30.",
		},
		{
			Category: "allergies",
			Question: "What are common allergy symptoms?",
			Answer:   "Common allergy symptoms include sneezing, runny nose, itchy eyes, skin rash, hives, and in severe cases, difficulty breathing or swallowing (anaphylaxis).",
		},
		{
			Category: "allergies",
			Question: "How can I manage seasonal allergies?",
			Answer:   "Manage seasonal allergies by avoiding triggers, using air purifiers, keeping windows closed during high pollen days, taking antihistamines, and consulting an allergist if needed.",
		},
	}
}
