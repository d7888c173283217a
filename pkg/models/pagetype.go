package models

// PageType is the role of a single page. There's no Unknown variant: the empty
// value means unset and is resolved by position when a comic is exported.
type PageType string

const (
	PageTypeFrontCover    PageType = "FrontCover"
	PageTypeInnerCover    PageType = "InnerCover"
	PageTypeRoundup       PageType = "Roundup"
	PageTypeStory         PageType = "Story"
	PageTypeAdvertisement PageType = "Advertisement"
	PageTypeEditorial     PageType = "Editorial"
	PageTypeLetters       PageType = "Letters"
	PageTypePreview       PageType = "Preview"
	PageTypeBackCover     PageType = "BackCover"
	PageTypeOther         PageType = "Other"
	PageTypeDeleted       PageType = "Deleted"
)

var AllPageTypes = []PageType{
	PageTypeFrontCover, PageTypeInnerCover, PageTypeRoundup, PageTypeStory,
	PageTypeAdvertisement, PageTypeEditorial, PageTypeLetters, PageTypePreview,
	PageTypeBackCover, PageTypeOther, PageTypeDeleted,
}

var pageTypes = newEnumSet[PageType]("Type", "", AllPageTypes, map[string]PageType{
	"Advertisment": PageTypeAdvertisement,
})

func ParsePageType(s string) (PageType, error) {
	return pageTypes.parse(s)
}

func (p PageType) IsValid() bool {
	return pageTypes.valid(p)
}

func (p PageType) IsUnknown() bool {
	return p == ""
}

// Resolve returns the effective type of a page at index: unset pages are the
// front cover when first and story pages otherwise.
func (p PageType) Resolve(index int) PageType {
	if p != "" {
		return p
	}
	if index == 0 {
		return PageTypeFrontCover
	}
	return PageTypeStory
}

func (p PageType) String() string {
	return string(p)
}
