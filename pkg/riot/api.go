package riot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxMatchIDsPerCall is the page size ceiling of the match-v5 ids endpoint.
const MaxMatchIDsPerCall = 100

type MatchIDsQuery struct {
	StartTime int64
	EndTime   int64
	Start     int
	Count     int
}

// ParseRiotID splits "Name#TAG".
func ParseRiotID(riotID string) (name, tag string, err error) {
	name, tag, ok := strings.Cut(riotID, "#")
	if !ok || name == "" || tag == "" {
		return "", "", fmt.Errorf("riot id must look like Name#TAG, got %q", riotID)
	}
	return name, tag, nil
}

func (c *HTTPClient) AccountByRiotID(ctx context.Context, routing, riotID string) (*AccountDTO, error) {
	name, tag, err := ParseRiotID(riotID)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.BaseURL(routing), url.PathEscape(name), url.PathEscape(tag))

	var acc AccountDTO
	if err := c.Fetch(ctx, u, nil, &acc); err != nil {
		return nil, err
	}
	if acc.PUUID == "" {
		return nil, fmt.Errorf("account %s has no puuid", riotID)
	}
	return &acc, nil
}

func (c *HTTPClient) MatchIDs(ctx context.Context, routing, puuid string, q MatchIDsQuery) ([]string, error) {
	count := q.Count
	if count <= 0 || count > MaxMatchIDsPerCall {
		count = MaxMatchIDsPerCall
	}
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids", c.BaseURL(routing), url.PathEscape(puuid))
	params := url.Values{}
	params.Set("startTime", strconv.FormatInt(q.StartTime, 10))
	params.Set("endTime", strconv.FormatInt(q.EndTime, 10))
	params.Set("start", strconv.Itoa(q.Start))
	params.Set("count", strconv.Itoa(count))

	var ids []string
	if err := c.Fetch(ctx, u, params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *HTTPClient) Match(ctx context.Context, routing, matchID string) (*MatchDTO, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.BaseURL(routing), url.PathEscape(matchID))

	var m MatchDTO
	if err := c.Fetch(ctx, u, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
