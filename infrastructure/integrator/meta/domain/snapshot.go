package metadomain

// AccountSnapshot reúne as oito coleções buscadas de uma conta para um período
type AccountSnapshot struct {
	AccountID        string
	CampaignInsights []InsightItem
	AdSetInsights    []InsightItem
	AdInsights       []InsightItem
	AgeInsights      []InsightItem
	GenderInsights   []InsightItem
	Campaigns        []Campaign
	AdSets           []AdSet
	Ads              []Ad
}
