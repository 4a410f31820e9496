package routes

var (
	BearerAuth = []map[string][]string{
		{"bearer": {}},
	}
)

type Tag string

const (
	TagStrike Tag = "strike"
	TagHealth Tag = "health"
)

func (t Tag) String() string { return string(t) }
