package models

// Creator roles, one per ComicInfo creator field.
const (
	CreatorRoleWriter      = "writer"
	CreatorRolePenciller   = "penciller"
	CreatorRoleInker       = "inker"
	CreatorRoleColorist    = "colorist"
	CreatorRoleLetterer    = "letterer"
	CreatorRoleCoverArtist = "cover_artist"
	CreatorRoleEditor      = "editor"
	CreatorRoleTranslator  = "translator"
)

// Creator is one person credited on a comic.
type Creator struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
