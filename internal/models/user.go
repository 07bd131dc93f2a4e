package models

// UserInfo is the identity snapshot the session collaborator hands us.
// Sections lists the physical production sections (1=Raw Material,
// 2=Processing, 3=Packaging) the user is assigned to. These are not the
// chatbot topic sections; access.Checker is the only place the two meet.
type UserInfo struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Sections []int  `json:"sections"`
}

// HasSection reports whether the user is assigned to the given section.
func (u *UserInfo) HasSection(section int) bool {
	for _, s := range u.Sections {
		if s == section {
			return true
		}
	}
	return false
}
