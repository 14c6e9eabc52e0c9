package normalizing

import (
	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-report-api/internal/domain"
)

// ExtractCreative percorre o criativo na ordem: imagem direta, link_data,
// pôster do vídeo, primeiro cartão do carrossel e asset_feed_spec. Cada campo
// fica com o primeiro valor não vazio nessa ordem.
func ExtractCreative(creative *metadomain.Creative) *domain.CreativeDetails {
	if creative == nil {
		return nil
	}

	layers := []domain.CreativeDetails{{
		Title:    creative.Title,
		Body:     creative.Body,
		ImageURL: creative.ImageURL,
	}}

	if spec := creative.ObjectStorySpec; spec != nil {
		if link := spec.LinkData; link != nil {
			layers = append(layers, domain.CreativeDetails{
				Title:           link.Name,
				Body:            link.Message,
				LinkDescription: link.Description,
				DisplayLink:     firstNonEmpty(link.Caption, link.Link),
				CallToAction:    ctaType(link.CallToAction),
				ImageURL:        link.Picture,
			})
		}

		if video := spec.VideoData; video != nil {
			layers = append(layers, domain.CreativeDetails{
				Title:           video.Title,
				Body:            video.Message,
				LinkDescription: video.LinkDescription,
				CallToAction:    ctaType(video.CallToAction),
				ImageURL:        video.ImageURL,
			})
		}

		if link := spec.LinkData; link != nil && len(link.ChildAttachments) > 0 {
			child := link.ChildAttachments[0]
			layers = append(layers, domain.CreativeDetails{
				Title:           child.Name,
				LinkDescription: child.Description,
				DisplayLink:     child.Link,
				CallToAction:    ctaType(child.CallToAction),
				ImageURL:        firstNonEmpty(child.Picture, child.ImageURL),
			})
		}
	}

	if feed := creative.AssetFeedSpec; feed != nil {
		layer := domain.CreativeDetails{}
		if len(feed.Titles) > 0 {
			layer.Title = feed.Titles[0].Text
		}
		if len(feed.Bodies) > 0 {
			layer.Body = feed.Bodies[0].Text
		}
		if len(feed.Descriptions) > 0 {
			layer.LinkDescription = feed.Descriptions[0].Text
		}
		if len(feed.LinkURLs) > 0 {
			layer.DisplayLink = firstNonEmpty(feed.LinkURLs[0].DisplayURL, feed.LinkURLs[0].WebsiteURL)
		}
		if len(feed.CallToActionTypes) > 0 {
			layer.CallToAction = feed.CallToActionTypes[0]
		}
		if len(feed.Images) > 0 {
			layer.ImageURL = feed.Images[0].URL
		}
		if layer.ImageURL == "" && len(feed.Videos) > 0 {
			layer.ImageURL = feed.Videos[0].ThumbnailURL
		}
		layers = append(layers, layer)
	}

	details := &domain.CreativeDetails{ThumbnailURL: creative.ThumbnailURL}
	if creative.ObjectStorySpec != nil {
		details.PageID = creative.ObjectStorySpec.PageID
	}

	for _, layer := range layers {
		details.Title = firstNonEmpty(details.Title, layer.Title)
		details.Body = firstNonEmpty(details.Body, layer.Body)
		details.LinkDescription = firstNonEmpty(details.LinkDescription, layer.LinkDescription)
		details.DisplayLink = firstNonEmpty(details.DisplayLink, layer.DisplayLink)
		details.CallToAction = firstNonEmpty(details.CallToAction, layer.CallToAction)
		details.ImageURL = firstNonEmpty(details.ImageURL, layer.ImageURL)
	}

	// vídeo sem pôster: a miniatura é a melhor imagem disponível
	details.ImageURL = firstNonEmpty(details.ImageURL, details.ThumbnailURL)

	return details
}

func ctaType(cta *metadomain.CallToAction) string {
	if cta == nil {
		return ""
	}
	return cta.Type
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
