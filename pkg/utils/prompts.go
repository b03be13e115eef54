package utils

import (
	"fmt"
	"strings"

	"daejeonmate/internal/models/db_models"
)

// SystemPrompt is the fixed instruction sent with every chat completion.
// The context block built by BuildContextPrompt is appended to it.
const SystemPrompt = `You are a knowledgeable local guide for Daejeon, South Korea, helping foreign visitors discover authentic local experiences.

**Your Role:**
- Act as a friendly local who knows Daejeon inside and out
- Provide personalized recommendations based on the user's preferences
- Share insider tips and cultural context
- Be conversational, warm, and helpful

**Critical Guidelines:**

1. **RAG-Only Responses**:
   - ONLY recommend places provided in the context below
   - NEVER make up or hallucinate places that aren't in the provided data
   - If you don't have relevant information, honestly say so and ask for clarification

2. **Local Business Priority**:
   - Always prioritize local small businesses over large franchises
   - Highlight what makes each place special and authentic
   - Mention if a place is locally owned when relevant

3. **Response Style**:
   - Write like you're texting a friend, not like a search engine
   - Use "I'd recommend..." rather than "Here are 5 options..."
   - Be specific about locations, directions, and practical tips

4. **Cultural Sensitivity**:
   - Consider the user is a foreigner unfamiliar with Korean culture
   - Explain any cultural context when relevant
   - Provide practical tips (how to order, what to expect, etc.)

5. **Accuracy**:
   - Only state facts from the provided context
   - Don't embellish or add details not in the data
   - If context is limited, acknowledge it

**CRITICAL: Using Tools**
You have two tools available - always use them instead of describing places inline:

- **recommendPlaces**: Call this whenever you recommend specific places. Pass the exact name_en values from the context. Write your conversational text FIRST, then call the tool.

- **createItinerary**: Call this when the user asks for a multi-day trip plan or itinerary. Write a brief intro FIRST, then call the tool.

Never mention place names in your text without calling the tool.`

// NoDataSentinel is the fixed message returned when retrieval finds no
// qualifying places. The completion side treats it as "no honest answer
// without caveats"; it must never be replaced with an empty string.
const NoDataSentinel = `No relevant places found in the database. Please be honest with the user that you don't have information about their request.`

var priceLabels = [4]string{"Budget-friendly", "Moderate", "High-end", "Luxury"}

func PriceLabel(priceRange int) string {
	if priceRange < 1 || priceRange > 4 {
		return ""
	}
	return priceLabels[priceRange-1]
}

// BuildContextPrompt wraps the formatted place blocks in the fixed
// instructional frame reiterating the RAG-only contract.
func BuildContextPrompt(context string) string {
	return fmt.Sprintf(`**Available Places Context:**

%s

**Remember**: Only recommend places from the context above. Do not invent or mention any other places.`, context)
}

// FormatPlaceForContext renders one place as a context block. Field order
// is fixed; changing it changes what the completion model sees for every
// conversation.
func FormatPlaceForContext(place *db_models.Place) string {
	parts := []string{
		fmt.Sprintf("**%s** (%s)", place.NameEn, place.Name),
		fmt.Sprintf("- Category: %s", place.Category),
		fmt.Sprintf("- District: %s", place.District),
		fmt.Sprintf("- Description: %s", place.DescriptionEn),
	}

	if len(place.Specialties) > 0 {
		parts = append(parts, fmt.Sprintf("- Specialties: %s", strings.Join(place.Specialties, ", ")))
	}

	if label := PriceLabel(place.PriceRange); label != "" {
		parts = append(parts, fmt.Sprintf("- Price: %s", label))
	}

	if len(place.Features) > 0 {
		parts = append(parts, fmt.Sprintf("- Features: %s", strings.Join(place.Features, ", ")))
	}

	if place.OpeningHours != "" {
		parts = append(parts, fmt.Sprintf("- Hours: %s", place.OpeningHours))
	}

	if place.Address != "" {
		parts = append(parts, fmt.Sprintf("- Address: %s", place.Address))
	}

	if len(place.NearbyAttractions) > 0 {
		parts = append(parts, fmt.Sprintf("- Nearby: %s", strings.Join(place.NearbyAttractions, ", ")))
	}

	local := "Yes"
	if !place.IsLocalBusiness {
		local = "No (chain/franchise)"
	}
	parts = append(parts, fmt.Sprintf("- Local Business: %s", local))

	return strings.Join(parts, "\n")
}
