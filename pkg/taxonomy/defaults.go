package taxonomy

import "github.com/iWorld-y/stream_radar/pkg/model"

// DefaultScoring 默认打分常量
func DefaultScoring() Scoring {
	return Scoring{
		DefaultWeight:   5,
		PerMatchPoints:  5,
		KeywordCap:      25,
		RecencyBonus:    15,
		TechSignalBonus: 15,
		NoisePenalty:    50,
	}
}

// Default 内置的 DRM / 流媒体关键词体系
func Default() Taxonomy {
	return Taxonomy{
		Categories: map[model.Category][]string{
			model.CategoryTechnology: {
				"DRM", "encryption", "Widevine", "PlayReady", "FairPlay", "license",
				"content protection", "watermarking", "CDM", "pipeline", "encoding",
				"codec", "AV1", "HEVC", "anti-piracy", "latency", "transcoding", "hls", "dash",
			},
			model.CategoryCompetitor: {
				"StreamFab", "CleverGet", "AnyStream", "KeepStreams", "downloader",
				"ripper", "converter", "DVDFab", "RedFox", "Tunepat", "NoteBurner",
			},
			model.CategoryIndustry: {
				"Netflix", "Disney+", "YouTube", "Prime Video", "Hulu", "HBO",
				"Peacock", "Paramount+", "OTT", "streaming service", "subscriber",
				"market share", "partnership", "acquisition", "launch",
			},
		},
		TechSignals: []string{
			"update", "upgrade", "rollout", "patch", "fix", "release", "version",
			"policy", "enforcement", "L1", "L3", "SL2000", "SL3000", "deprecation", "vulnerability",
		},
		Noise: []string{
			"announces partnership", "marketing", "campaign", "event recap",
			"webinar", "whitepaper", "press release", "award", "hiring", "quarterly results",
		},
		Weights: map[model.Tier]int{
			model.TierS: 30,
			model.TierA: 25,
			model.TierB: 15,
			model.TierC: 5,
		},
		Topics: []Topic{
			{Name: "Legal", Keywords: []string{"dmca", "lawsuit", "court", "takedown", "copyright", "injunction", "诉讼", "版权", "起诉"}},
			{Name: "DRM", Keywords: []string{"drm", "cdm", "widevine", "playready", "fairplay", "content protection", "encryption", "加密"}},
			{Name: "Platform", Keywords: []string{"netflix", "disney+", "youtube", "prime video", "hulu", "hbo", "peacock", "paramount+"}},
			{Name: "Competitor", Keywords: []string{"streamfab", "cleverget", "anystream", "keepstreams", "dvdfab", "redfox", "tunepat", "noteburner"}},
		},
		Scoring: DefaultScoring(),
	}
}

// DefaultSources 内置信源
func DefaultSources() []model.Source {
	return []model.Source{
		{
			Name:            "InfoQ CN (架构/音视频)",
			URL:             "https://www.infoq.cn/feed",
			Kind:            model.KindRSS,
			DefaultCategory: model.CategoryTechnology,
			Tier:            model.TierS,
			Region:          "CN",
			Description:     "InfoQ 中文站，涵盖架构与前沿技术",
		},
		{
			Name:            "OSChina (开源/资讯)",
			URL:             "https://www.oschina.net/news/rss",
			Kind:            model.KindRSS,
			DefaultCategory: model.CategoryIndustry,
			Tier:            model.TierA,
			Region:          "CN",
			Description:     "开源中国最新资讯",
		},
		{
			Name:            "Solidot (硬核科技)",
			URL:             "https://www.solidot.org/index.rss",
			Kind:            model.KindRSS,
			DefaultCategory: model.CategoryTechnology,
			Tier:            model.TierS,
			Region:          "CN",
			Description:     "奇客的资讯，关注安全与黑客技术",
		},
		{
			Name:            "36Kr (行业资讯)",
			URL:             "https://www.36kr.com/feed",
			Kind:            model.KindRSS,
			DefaultCategory: model.CategoryIndustry,
			Tier:            model.TierA,
			Region:          "CN",
			Description:     "科技创投媒体",
		},
		{
			Name:            "V2EX (技术讨论)",
			URL:             "https://www.v2ex.com/index.xml",
			Kind:            model.KindRSS,
			DefaultCategory: model.CategoryIndustry,
			Tier:            model.TierB,
			Region:          "CN",
			Description:     "V2EX 社区热点",
		},
		{
			Name:            "TorrentFreak (DRM News)",
			URL:             "https://torrentfreak.com/feed/",
			Kind:            model.KindRSS,
			DefaultCategory: model.CategoryTechnology,
			Tier:            model.TierA,
			Description:     "反盗版与版权法律核心媒体",
		},
	}
}
