package models

// YesNo is a tri-state flag used by BlackAndWhite.
type YesNo string

const (
	YesNoUnknown YesNo = "Unknown"
	YesNoNo      YesNo = "No"
	YesNoYes     YesNo = "Yes"
)

var AllYesNo = []YesNo{YesNoUnknown, YesNoNo, YesNoYes}

var yesNos = newEnumSet("BlackAndWhite", YesNoUnknown, AllYesNo, map[string]YesNo{
	"true":  YesNoYes,
	"false": YesNoNo,
})

func ParseYesNo(s string) (YesNo, error) {
	return yesNos.parse(s)
}

func (y YesNo) IsValid() bool {
	return yesNos.valid(y)
}

func (y YesNo) IsUnknown() bool {
	return y == "" || y == YesNoUnknown
}

func (y YesNo) String() string {
	if y == "" {
		return string(YesNoUnknown)
	}
	return string(y)
}
