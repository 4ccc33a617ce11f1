package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var lineupColumns = []string{"name", "genres"}

func titled(name string) notionapi.Page {
	return notionapi.Page{Properties: notionapi.Properties{
		"name": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: name}}},
	}}
}

func TestLineupNames_FollowsCursor(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == ""
	})).Return(&notionapi.DatabaseQueryResponse{
		Results:    []notionapi.Page{titled("Muse"), titled("  ")},
		HasMore:    true,
		NextCursor: notionapi.Cursor("cursor-abc"),
	}, nil).Once()
	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == notionapi.Cursor("cursor-abc")
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{titled("Nina Simone")},
	}, nil).Once()

	names, err := NewLineup(mc, "db-1", lineupColumns).Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Muse", "Nina Simone"}, names)
	mc.AssertExpectations(t)
}

func TestLineupNames_StopsWithoutCursor(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(&notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{titled("Muse")},
			HasMore: true,
		}, nil).Once()

	names, err := NewLineup(mc, "db-1", lineupColumns).Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Muse"}, names)
	mc.AssertExpectations(t)
}

func TestLineupNames_Error(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(nil, assert.AnError).Once()

	names, err := NewLineup(mc, "db-1", lineupColumns).Names(ctx)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, names)
}

func TestLineupNames_Cancelled(t *testing.T) {
	mc := new(MockClient)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	names, err := NewLineup(mc, "db-1", lineupColumns).Names(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, names)
	mc.AssertNotCalled(t, "QueryDatabase")
}

func TestLineupAddAct(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	var got *notionapi.PageCreateRequest
	mc.On("CreatePage", ctx, mock.AnythingOfType("*notionapi.PageCreateRequest")).
		Run(func(args mock.Arguments) { got = args.Get(1).(*notionapi.PageCreateRequest) }).
		Return(&notionapi.Page{ID: "p1"}, nil).Once()

	require.NoError(t, NewLineup(mc, "db-1", lineupColumns).AddAct(ctx, []string{"Muse", "Rock"}))

	require.NotNil(t, got)
	assert.Equal(t, notionapi.ParentTypeDatabaseID, got.Parent.Type)
	assert.Equal(t, notionapi.DatabaseID("db-1"), got.Parent.DatabaseID)
	assert.Equal(t, "Muse", Title(got.Properties))
	rtp, ok := got.Properties["genres"].(notionapi.RichTextProperty)
	require.True(t, ok)
	assert.Equal(t, "Rock", rtp.RichText[0].Text.Content)
}

func TestLineupAddAct_EmptyRow(t *testing.T) {
	mc := new(MockClient)
	assert.Error(t, NewLineup(mc, "db-1", lineupColumns).AddAct(context.Background(), nil))
	mc.AssertNotCalled(t, "CreatePage")
}
