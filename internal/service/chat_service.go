package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shri-jewellery/storefront/internal/integration"
)

const (
	maxReplyRunes = 800
	replySuffix   = "...\n\nFor more detailed information, please call us at +91 90192 31931."

	emptyMessageReply = "Please ask me something about our jewelry collection!"
	defaultReply      = "Thank you for your interest! We specialize in Gold, Silver, and Diamond jewelry for all occasions. What would you like to know? You can ask about prices, designs, delivery, or any of our products. Call us at +91 90192 31931 for personalized assistance."
)

const storePrompt = `You are a helpful AI assistant for "Shri Jewellery", a premium jewelry store in India. Here's important information about the store:

STORE INFORMATION:
- Name: Shri Jewellery
- Location: Chinya, Nagamangala Taluk, Mandya District, Mysore Main Road
- Phone: +91 90192 31931 / +91 89044 39579
- We specialize in Gold, Silver, and Diamond jewelry for Women, Men, and Children

PRODUCT CATALOG:
- Gold Jewelry: Rings (5g-20g), Chains (10g-35g), Necklaces (10g-30g), Nose pins (1g-3g)
- Silver Jewelry: Rings (5g-10g), Chains (10g-20g), Necklaces (5g-10g), Nose pins (1g-2g)
- Diamond Jewelry: Rings (5g-10g), Necklaces (10g-20g), Nose pins (1g-2g)
- Children's Collection: Gold rings (2g-5g), Silver rings (2g-5g), Gold chains (5g-10g), Silver chains (5g-10g)

PRICING (Base prices, calculated per gram):
- Gold: Starting from ₹6,500 for children's items, up to ₹144,000 for heavy chains
- Silver: Starting from ₹240 for nose pins, up to ₹6,000 for chains
- Diamond: Starting from ₹1,960 for nose pins, up to ₹250,000 for necklaces

SERVICES:
- Online ordering with order tracking
- Delivery across India (3-7 business days)
- Virtual try-on feature available
- 7-day return/exchange policy

User's question: `

const promptTail = "\nProvide a helpful, accurate response as Shri Jewellery's AI assistant:"

type keywordReply struct {
	keyword string
	reply   string
}

// keywordReplies is checked in order; the first substring match wins.
var keywordReplies = []keywordReply{
	{"price", "Our jewelry prices vary by metal type and weight. Gold starts from ₹6,500, Silver from ₹240, and Diamond from ₹1,960. Visit our store or call +91 90192 31931 for current prices."},
	{"gold", "We offer beautiful gold jewelry including rings, chains, necklaces, and nose pins for women, men, and children. Gold pieces start from ₹6,500. Which item interests you?"},
	{"silver", "Our silver collection includes elegant rings, chains, necklaces, and nose pins starting from ₹240. Perfect for both everyday wear and special occasions!"},
	{"diamond", "We have premium diamond jewelry including rings, necklaces, and nose pins. Diamond pieces start from ₹1,960. Call us for custom designs!"},
	{"ring", "We offer rings in gold, silver, and diamond for women, men, and children. Available in various designs and weights. What type interests you?"},
	{"chain", "Our chains are available in gold, silver, and diamond. Gold chains start from ₹35,000, silver from ₹3,500. What style do you prefer?"},
	{"necklace", "Beautiful necklaces in gold, silver, and diamond. Gold necklaces start from ₹42,000. We have designs for every occasion!"},
	{"delivery", "We deliver across India in 3-7 business days. Free shipping on orders above ₹5,000. Call +91 90192 31931 for more details."},
	{"return", "We offer a 7-day return/exchange policy on all jewelry. Contact us at +91 90192 31931 to initiate returns."},
	{"children", "We have a special children's jewelry collection in gold and silver with safe, age-appropriate designs. Starting from ₹1,500."},
}

// ChatService answers customer questions. It is stateless between calls.
type ChatService struct {
	generator integration.TextGenerator
	logger    *zap.Logger
}

// NewChatService builds the assistant. A nil generator means keyword replies only.
func NewChatService(generator integration.TextGenerator, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{generator: generator, logger: logger}
}

// Reply always returns a non-empty answer.
func (s *ChatService) Reply(ctx context.Context, message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return emptyMessageReply
	}
	if reply, ok := s.generate(ctx, msg); ok {
		return reply
	}
	return matchKeyword(msg)
}

func (s *ChatService) generate(ctx context.Context, msg string) (reply string, ok bool) {
	if s.generator == nil {
		return "", false
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chat generation panic", zap.Any("panic", r))
			reply, ok = "", false
		}
	}()

	text, err := s.generator.Generate(ctx, storePrompt+msg+promptTail)
	if err != nil {
		if !isDisabled(err) {
			s.logger.Info("chat generation failed; using keyword reply", zap.Error(err))
		}
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return truncateReply(text), true
}

func matchKeyword(msg string) string {
	for _, kr := range keywordReplies {
		if strings.Contains(msg, kr.keyword) {
			return kr.reply
		}
	}
	return defaultReply
}

func truncateReply(text string) string {
	runes := []rune(text)
	if len(runes) <= maxReplyRunes {
		return text
	}
	return string(runes[:maxReplyRunes]) + replySuffix
}
