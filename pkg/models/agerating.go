package models

type AgeRating string

const (
	AgeRatingUnknown        AgeRating = "Unknown"
	AgeRatingAdultsOnly18   AgeRating = "Adults Only 18+"
	AgeRatingEarlyChildhood AgeRating = "Early Childhood"
	AgeRatingEveryone       AgeRating = "Everyone"
	AgeRatingEveryone10     AgeRating = "Everyone 10+"
	AgeRatingG              AgeRating = "G"
	AgeRatingKidsToAdults   AgeRating = "Kids to Adults"
	AgeRatingM              AgeRating = "M"
	AgeRatingMA15           AgeRating = "MA15+"
	AgeRatingMature17       AgeRating = "Mature 17+"
	AgeRatingPG             AgeRating = "PG"
	AgeRatingR18            AgeRating = "R18+"
	AgeRatingRatingPending  AgeRating = "Rating Pending"
	AgeRatingTeen           AgeRating = "Teen"
	AgeRatingX18            AgeRating = "X18+"
)

var AllAgeRatings = []AgeRating{
	AgeRatingUnknown, AgeRatingAdultsOnly18, AgeRatingEarlyChildhood, AgeRatingEveryone,
	AgeRatingEveryone10, AgeRatingG, AgeRatingKidsToAdults, AgeRatingM, AgeRatingMA15,
	AgeRatingMature17, AgeRatingPG, AgeRatingR18, AgeRatingRatingPending, AgeRatingTeen,
	AgeRatingX18,
}

var ageRatings = newEnumSet("AgeRating", AgeRatingUnknown, AllAgeRatings, map[string]AgeRating{
	"MA 15+": AgeRatingMA15,
})

func ParseAgeRating(s string) (AgeRating, error) {
	return ageRatings.parse(s)
}

func (a AgeRating) IsValid() bool {
	return ageRatings.valid(a)
}

func (a AgeRating) IsUnknown() bool {
	return a == "" || a == AgeRatingUnknown
}

func (a AgeRating) String() string {
	if a == "" {
		return string(AgeRatingUnknown)
	}
	return string(a)
}
