package intelligence

import (
	"fmt"

	"github.com/skillmate/service/internal/models"
)

// ============================================================================
// 🛟 兜底内容 - LLM不可用时返回的手写预览/推理/路线图
// ============================================================================

var fallbackPreviews = map[models.CSDomain]*DomainPreview{
	models.DomainSoftwareDevelopment: {
		Title:        "A Day in Software Development",
		Description:  "Software developers create applications and programs that people use every day.",
		DayInTheLife: "A typical day starts with checking what needs to be built or fixed. You might spend the morning writing code to add a new feature to an app, like a button that lets users save their progress. In the afternoon, you could test your code to make sure it works correctly, and then work with your team to plan what to build next. It's like being a digital craftsman, building tools that help people.",
		TypicalTasks: []string{"Writing code for features", "Testing and fixing bugs", "Planning with team members", "Learning new tools"},
		SkillsNeeded: []string{"Problem-solving", "Attention to detail", "Patience", "Logical thinking"},
		WhyItMatters: "Software is everywhere - from your phone apps to websites. Developers make technology work for people.",
	},
	models.DomainAIMachineLearning: {
		Title:        "A Day in AI & Machine Learning",
		Description:  "AI engineers teach computers to learn and make decisions like humans do.",
		DayInTheLife: "Your day might begin by preparing data - like organizing photos so a computer can learn to recognize cats. Then you'd train a model, which is like teaching the computer through examples. You'd check how well it learned and adjust it to make it better. It's like being a teacher for computers, helping them understand patterns and make smart decisions.",
		TypicalTasks: []string{"Preparing and organizing data", "Training AI models", "Testing AI performance", "Improving accuracy"},
		SkillsNeeded: []string{"Curiosity", "Pattern recognition", "Math basics", "Creative thinking"},
		WhyItMatters: "AI helps solve complex problems and makes technology smarter, from recommendations to medical diagnosis.",
	},
	models.DomainDataScience: {
		Title:        "A Day in Data Science",
		Description:  "Data scientists find meaningful patterns in information to help make better decisions.",
		DayInTheLife: "You'd start by collecting data - maybe sales numbers or survey responses. Then you'd clean it up and organize it, like sorting through a messy room. Next, you'd analyze it to find interesting patterns, like \"people buy more ice cream in summer.\" Finally, you'd create visualizations - charts and graphs - to share your findings with others. It's like being a detective, finding hidden stories in numbers.",
		TypicalTasks: []string{"Collecting and cleaning data", "Analyzing patterns", "Creating visualizations", "Presenting findings"},
		SkillsNeeded: []string{"Curiosity about data", "Logical thinking", "Communication", "Attention to detail"},
		WhyItMatters: "Data helps businesses and organizations make better decisions and understand their customers.",
	},
	models.DomainCybersecurity: {
		Title:        "A Day in Cybersecurity",
		Description:  "Cybersecurity experts protect computer systems and data from threats and attacks.",
		DayInTheLife: "Your day involves checking systems for any suspicious activity, like a security guard watching for problems. You might test security measures to find weaknesses before bad actors do. When issues are found, you'd fix them quickly. You also stay updated on new threats and teach others about staying safe online. It's like being a digital protector, keeping information safe.",
		TypicalTasks: []string{"Monitoring for threats", "Testing security", "Fixing vulnerabilities", "Educating users"},
		SkillsNeeded: []string{"Attention to detail", "Problem-solving", "Ethical thinking", "Staying updated"},
		WhyItMatters: "Cybersecurity protects our personal information, money, and important systems from digital threats.",
	},
	models.DomainCloudDevOps: {
		Title:        "A Day in Cloud & DevOps",
		Description:  "Cloud engineers manage and optimize how applications run on the internet.",
		DayInTheLife: "You'd start by checking if applications are running smoothly on cloud servers. You might set up new servers or adjust existing ones to handle more users. You'd automate tasks to make things run more efficiently, like setting up automatic backups. You also help developers deploy their code quickly and safely. It's like being a digital infrastructure manager, making sure everything runs smoothly behind the scenes.",
		TypicalTasks: []string{"Managing cloud servers", "Automating processes", "Deploying applications", "Monitoring performance"},
		SkillsNeeded: []string{"System thinking", "Organization", "Problem-solving", "Efficiency focus"},
		WhyItMatters: "Cloud technology makes applications fast, reliable, and accessible to people everywhere.",
	},
}

// fallbackDomainPreview 返回方向的兜底预览，未知方向回退到软件开发
func fallbackDomainPreview(domain string) *DomainPreview {
	if d, ok := models.ParseDomain(domain); ok {
		copied := *fallbackPreviews[d]
		return &copied
	}
	copied := *fallbackPreviews[models.DomainSoftwareDevelopment]
	return &copied
}

// fallbackCareerReasoning 通用兜底推理，各方向共用模板
func fallbackCareerReasoning(domain string) *CareerReasoning {
	return &CareerReasoning{
		Domain:           domain,
		WhyItFits:        fmt.Sprintf("%s could be a great fit if you enjoy solving problems and working with technology. This field offers many opportunities to create, learn, and grow.", domain),
		KeyStrengths:     []string{"Problem-solving ability", "Logical thinking", "Curiosity to learn"},
		LearningApproach: "Start with the basics and build your skills gradually. Practice regularly and don't be afraid to ask questions.",
		CareerPath:       "This domain offers various career paths from entry-level positions to specialized roles as you gain experience.",
		Encouragement:    "Every expert was once a beginner. Take your time, stay curious, and you'll find your way!",
	}
}

// fallbackLearningRoadmap 通用兜底路线图
func fallbackLearningRoadmap(domain string) *LearningRoadmap {
	return &LearningRoadmap{
		Domain:        domain,
		Overview:      fmt.Sprintf("A structured learning path for %s, starting from the basics and building up to advanced topics.", domain),
		Year1:         defaultRoadmapPhase("Year 1: Foundation"),
		Year2:         defaultRoadmapPhase("Year 2: Building Skills"),
		Year3:         defaultRoadmapPhase("Year 3: Specialization"),
		Year4:         defaultRoadmapPhase("Year 4: Advanced & Projects"),
		NextSteps:     []string{"Start with basics", "Practice regularly", "Build small projects", "Join communities"},
		Encouragement: "Learning takes time. Go at your own pace and celebrate small wins along the way!",
	}
}

func defaultRoadmapPhase(title string) RoadmapPhase {
	return RoadmapPhase{
		Title:     title,
		Duration:  "12 months",
		Focus:     "Building foundational knowledge and skills",
		Topics:    []string{"Core concepts", "Basic tools", "Fundamentals"},
		Projects:  []string{"Simple practice projects", "Beginner exercises"},
		Resources: []string{"Online tutorials", "Beginner courses", "Documentation"},
	}
}
