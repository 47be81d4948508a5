package models

type ContentType string

const (
	ContentTypeSocialPost    ContentType = "social-post"
	ContentTypeCaptions      ContentType = "captions"
	ContentTypeHashtags      ContentType = "hashtags"
	ContentTypeThreads       ContentType = "threads"
	ContentTypeBlogPosts     ContentType = "blog-posts"
	ContentTypeArticles      ContentType = "articles"
	ContentTypeWebsiteCopy   ContentType = "website-copy"
	ContentTypeMarketingCopy ContentType = "marketing-copy"
)

// ParseContentType returns the content type for s, or false when s is
// not one of the eight supported types.
func ParseContentType(s string) (ContentType, bool) {
	if _, ok := systemPrompts[ContentType(s)]; ok {
		return ContentType(s), true
	}
	return "", false
}

var systemPrompts = map[ContentType]string{
	ContentTypeSocialPost:    "You are a social media expert. Create engaging, authentic social media posts that drive engagement. Include emojis where appropriate and keep the tone conversational yet professional.",
	ContentTypeCaptions:      "You are a creative caption writer. Write catchy, engaging captions that complement visual content. Be creative with wordplay and include relevant emojis.",
	ContentTypeHashtags:      "You are a hashtag strategist. Generate relevant, trending hashtags that will help increase reach and engagement. Provide a mix of popular and niche hashtags.",
	ContentTypeThreads:       "You are a thread content creator. Write engaging Twitter/X threads that tell a story or provide value. Structure the content in numbered tweets that flow naturally together.",
	ContentTypeBlogPosts:     "You are a professional blog writer. Create well-structured, informative, and engaging blog posts with clear headlines, subheadings, and valuable content that provides real value to readers.",
	ContentTypeArticles:      "You are an expert article writer. Write authoritative, well-researched articles that demonstrate expertise in the subject matter. Use professional tone and provide actionable insights.",
	ContentTypeWebsiteCopy:   "You are a conversion-focused copywriter. Create compelling website copy that clearly communicates value propositions, builds trust, and guides visitors toward desired actions.",
	ContentTypeMarketingCopy: "You are a persuasive marketing copywriter. Create compelling marketing content that captures attention, builds desire, and motivates action. Focus on benefits and emotional triggers.",
}

var stylePrompts = map[ContentType]string{
	ContentTypeSocialPost:    "Rewrite this to sound like a human social media expert who understands current trends and speaks naturally to their audience.",
	ContentTypeCaptions:      "Rewrite this caption to sound more authentic and relatable, like it was written by someone who genuinely connects with their audience.",
	ContentTypeHashtags:      "Refine these hashtags to be more strategic and natural, like those chosen by an experienced social media manager.",
	ContentTypeThreads:       "Rewrite this thread to flow more naturally and conversationally, like a real person sharing valuable insights with their community.",
	ContentTypeBlogPosts:     "Rewrite this blog post to be more engaging and conversational while maintaining professionalism, like a human expert sharing their knowledge.",
	ContentTypeArticles:      "Rewrite this article to be more engaging and accessible while maintaining authority, like a human expert explaining complex topics clearly.",
	ContentTypeWebsiteCopy:   "Rewrite this website copy to be more persuasive and human-centered, focusing on emotional connection and clear value propositions.",
	ContentTypeMarketingCopy: "Rewrite this marketing copy to be more compelling and authentic, like it was crafted by a human marketer who understands their audience deeply.",
}

// SystemPrompt returns the generation instruction for the content type.
func (c ContentType) SystemPrompt() string {
	return systemPrompts[c]
}

// StylePrompt returns the style-rewrite instruction for the content type.
func (c ContentType) StylePrompt() string {
	return stylePrompts[c]
}

type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneCasual         Tone = "casual"
	ToneWitty          Tone = "witty"
	TonePersuasive     Tone = "persuasive"
	ToneEmpathetic     Tone = "empathetic"
	ToneConfident      Tone = "confident"
	ToneConversational Tone = "conversational"
	ToneUrgent         Tone = "urgent"
)

// DefaultTone is applied when a request omits the tone. Initial
// generation already leans professional, so the tone-adjustment pass is
// skipped for it.
const DefaultTone = ToneProfessional

var toneDescriptions = map[Tone]string{
	ToneProfessional:   "professional, authoritative, and trustworthy",
	ToneCasual:         "casual, friendly, and approachable",
	ToneWitty:          "witty, clever, and entertaining with subtle humor",
	TonePersuasive:     "persuasive, compelling, and action-oriented",
	ToneEmpathetic:     "empathetic, understanding, and emotionally resonant",
	ToneConfident:      "confident, assertive, and inspiring",
	ToneConversational: "conversational, warm, and relatable",
	ToneUrgent:         "urgent, compelling, and time-sensitive",
}

// ParseTone returns the tone for s, or false when s is not one of the
// eight supported tones.
func ParseTone(s string) (Tone, bool) {
	if _, ok := toneDescriptions[Tone(s)]; ok {
		return Tone(s), true
	}
	return "", false
}

// Description returns the adjective list used in the tone-adjustment
// system instruction.
func (t Tone) Description() string {
	return toneDescriptions[t]
}

// GenerationRequest is the validated payload of one generation call. It
// lives only for the duration of the request.
type GenerationRequest struct {
	Prompt               string
	ContentType          ContentType
	Tone                 Tone
	EnablePostProcessing bool
}

// GenerationResult is the pipeline output returned to the caller.
type GenerationResult struct {
	Content         string `json:"content"`
	ProcessedWithAI bool   `json:"processedWithAI"`
	Tone            Tone   `json:"tone"`
}
