package steam

// PlayerSummary is the raw player profile returned by GetPlayerSummaries.
type PlayerSummary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	ProfileURL  string `json:"profileurl"`
	Avatar      string `json:"avatar"`
	AvatarFull  string `json:"avatarfull"`
	RealName    string `json:"realname"`
	CountryCode string `json:"loccountrycode"`
}

// OwnedGame is one entry of the raw GetOwnedGames response.
type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
	RTimeLastPlayed int64  `json:"rtime_last_played"`
}

// RawAchievement is one achievement entry as the API reports it. Achieved is
// a pointer so a missing flag is distinguishable from an explicit zero; the
// normalizer defaults it to locked.
type RawAchievement struct {
	APIName     string `json:"apiname"`
	Achieved    *int   `json:"achieved"`
	UnlockTime  int64  `json:"unlocktime"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RawStat is one numeric stat entry. Value is a pointer so an omitted value
// stays distinguishable from zero all the way into the store.
type RawStat struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// GamePayload is the combined raw stats data for one (account, game) pair,
// as handed to the normalizer.
type GamePayload struct {
	AppID        int
	GameName     string
	Achievements []RawAchievement
	Stats        []RawStat
}
