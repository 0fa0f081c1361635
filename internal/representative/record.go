package representative

// Record é um representante eleito como vem do diretório.
//
// ElectedOffice e RepresentativeSetName são texto livre do upstream, sem
// normalização. Nunca altere esses valores para exibição; a comparação
// case-insensitive fica só no Matcher.
type Record struct {
	Name                  string `json:"name"`
	Email                 string `json:"email,omitempty"`
	ElectedOffice         string `json:"elected_office"`
	RepresentativeSetName string `json:"representative_set_name"`
	DistrictName          string `json:"district_name"`
	PartyName             string `json:"party_name,omitempty"`
	URL                   string `json:"url,omitempty"`
	PhotoURL              string `json:"photo_url,omitempty"`
}

// Response é a parte da resposta do diretório que interessa à seleção.
// O resto do payload é opaco e repassado como veio.
type Response struct {
	Representatives []Record `json:"representatives_centroid"`
}
