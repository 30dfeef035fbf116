package metadomain

// InsightRow é a linha bruta do relatório de insights da Graph API, no nível
// de campanha com time_increment=1 (uma linha por dia). Os números vêm como
// strings, como a API devolve.
type InsightRow struct {
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	CTR          string   `json:"ctr"`
	CPC          string   `json:"cpc"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
	VideoPlays   []Action `json:"video_play_actions"`
}

// Action é um item do array heterogêneo de ações da Graph API
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// ActionValue devolve o valor da ação com o tipo informado e se ela existe
func ActionValue(actions []Action, actionType string) (string, bool) {
	for _, a := range actions {
		if a.ActionType == actionType {
			return a.Value, true
		}
	}
	return "", false
}

// InsightsResponse é o envelope paginado da Graph API
type InsightsResponse struct {
	Data   []InsightRow `json:"data"`
	Paging Paging       `json:"paging"`
}

type Paging struct {
	Next string `json:"next"`
}
