package domain

// Trend is the direction of a stat card's change indicator.
type Trend string

const (
	TrendIncrease Trend = "increase"
	TrendDecrease Trend = "decrease"
)

// StatCard is a single tile of the dashboard overview.
type StatCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
	Trend  Trend  `json:"trend,omitempty"`
	Color  string `json:"color"`
}

// NavItem is a sidebar entry. Items without RequiredRoles are visible to every identity.
type NavItem struct {
	Name          string      `json:"name"`
	Href          string      `json:"href"`
	Badge         string      `json:"badge,omitempty"`
	RequiredRoles Requirement `json:"-"`
}

// Navigation is the full sidebar before role filtering.
var Navigation = []NavItem{
	{Name: "Home", Href: "/dashboard"},
	{Name: "Analytics", Href: "/dashboard/analytics"},
	{Name: "Users", Href: "/dashboard/users", Badge: "125", RequiredRoles: Require(RoleAdmin, RoleModerator)},
	{Name: "Projects", Href: "/dashboard/projects"},
	{Name: "Documents", Href: "/dashboard/documents"},
	{Name: "Reports", Href: "/dashboard/reports", RequiredRoles: Require(RoleAdmin, RoleModerator)},
	{Name: "Notifications", Href: "/dashboard/notifications", Badge: "3"},
	{Name: "Administration", Href: "/dashboard/admin", RequiredRoles: Require(RoleAdmin)},
	{Name: "Settings", Href: "/dashboard/settings"},
}

// roleStats holds the static overview cards shown per role.
var roleStats = map[Role][]StatCard{
	RoleAdmin: {
		{Title: "Total Users", Value: "1,234", Change: "+12%", Trend: TrendIncrease, Color: "bg-blue-500"},
		{Title: "Monthly Revenue", Value: "₺24,500", Change: "+8%", Trend: TrendIncrease, Color: "bg-green-500"},
		{Title: "Active Projects", Value: "45", Change: "+15%", Trend: TrendIncrease, Color: "bg-purple-500"},
		{Title: "System Uptime", Value: "99.9%", Change: "+0.1%", Trend: TrendIncrease, Color: "bg-indigo-500"},
	},
	RoleModerator: {
		{Title: "Managed Users", Value: "256", Change: "+7%", Trend: TrendIncrease, Color: "bg-blue-500"},
		{Title: "Reviewed Content", Value: "34", Change: "+15%", Trend: TrendIncrease, Color: "bg-orange-500"},
		{Title: "Weekly Reports", Value: "12", Change: "+3%", Trend: TrendIncrease, Color: "bg-purple-500"},
	},
	RoleUser: {
		{Title: "My Projects", Value: "8", Change: "+2", Trend: TrendIncrease, Color: "bg-blue-500"},
		{Title: "Completed Tasks", Value: "23", Change: "+4%", Trend: TrendIncrease, Color: "bg-green-500"},
		{Title: "Working Hours", Value: "156h", Change: "+12h", Trend: TrendIncrease, Color: "bg-purple-500"},
		{Title: "Performance", Value: "94%", Change: "+2%", Trend: TrendIncrease, Color: "bg-indigo-500"},
	},
}

// StatsFor returns a copy of the overview cards for role r. Unknown roles get the user set.
func StatsFor(r Role) []StatCard {
	stats, ok := roleStats[r]
	if !ok {
		stats = roleStats[RoleUser]
	}
	out := make([]StatCard, len(stats))
	copy(out, stats)
	return out
}
