package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	starOn   = "★"
	starOff  = "☆"
	ownMark  = "del"
	titleMax = 60
)

// renderStories prints stories as a table. Star and delete columns are
// filled only for a logged-in user.
func renderStories(w io.Writer, stories []models.Story, user *models.User, empty string) {
	if len(stories) == 0 {
		fmt.Fprintln(w, empty)
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "", "Title", "Host", "Author", "Posted by", "ID"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: titleMax},
	})

	for _, s := range stories {
		star, own := "", ""
		if user != nil {
			star = starOff
			if user.IsFavorite(s.StoryID) {
				star = starOn
			}
			if user.IsOwnStory(s.StoryID) {
				own = ownMark
			}
		}
		t.AppendRow(table.Row{star, own, common.Truncate(s.Title, titleMax), s.Hostname(), s.Author, s.Username, s.StoryID})
	}

	fmt.Fprintln(w, t.Render())
}
