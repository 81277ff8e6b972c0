package generator

import "fmt"

// Prompt 表示发送给 LLM 的一组 system/user 消息。
type Prompt struct {
	System string
	User   string
}

const (
	titleSystem   = "You are an expert title generator who creates engaging, SEO-friendly blog titles."
	outlineSystem = "You are a highly skilled article writer."
	sectionSystem = "You are a skilled writer who creates engaging, conversational articles without robotic phrasing."
)

// BuildTitlePrompt asks for a single SEO title.
func BuildTitlePrompt(topic string) Prompt {
	return Prompt{
		System: titleSystem,
		User: fmt.Sprintf("Write a blog title about '%s'. Provide only one option, and if the title contains "+
			"any special characters (like **), ignore them.", topic),
	}
}

// BuildOutlinePrompt asks for numbered subheadings with short descriptions.
func BuildOutlinePrompt(topic string) Prompt {
	return Prompt{
		System: outlineSystem,
		User: fmt.Sprintf("Create a detailed outline for an SEO-friendly article titled '%s'. "+
			"Include engaging subheadings and brief descriptions for each.", topic),
	}
}

// BuildSectionPrompt asks for the body of one outline entry.
func BuildSectionPrompt(section, parentTopic string) Prompt {
	return Prompt{
		System: sectionSystem,
		User: fmt.Sprintf("Write a detailed and friendly section for the topic '%s - %s'. Make it informative, "+
			"relatable, and easy to read, incorporating personal examples and insights.", parentTopic, section),
	}
}
